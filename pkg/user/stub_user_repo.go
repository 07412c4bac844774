package user

import (
	"context"
	"sync"
)

type RepoStub struct {
	mu     sync.RWMutex
	users  map[int]User
	nextId int
}

func NewRepoStub() *RepoStub {
	return &RepoStub{
		users:  make(map[int]User),
		nextId: 1,
	}
}

func (r *RepoStub) CreateUser(ctx context.Context, user User) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Id = r.nextId
	r.users[user.Id] = user
	r.nextId++
	return user.Id, nil
}

func (r *RepoStub) GetUser(ctx context.Context, id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *RepoStub) GetUserByUid(ctx context.Context, uid string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Uid == uid {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *RepoStub) GetAllUsers(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users, nil
}

func (r *RepoStub) DeleteUser(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *RepoStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[int]User)
	r.nextId = 1
}
