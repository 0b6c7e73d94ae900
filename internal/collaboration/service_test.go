package collaboration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/tunebox/internal/model"
)

type mockCollabRepo struct {
	createFn func(ctx context.Context, collab *model.Collaboration) (string, error)
	deleteFn func(ctx context.Context, playlistID, userID string) (int64, error)
	existsFn func(ctx context.Context, playlistID, userID string) (bool, error)

	created *model.Collaboration
}

func (m *mockCollabRepo) Create(ctx context.Context, collab *model.Collaboration) (string, error) {
	m.created = collab
	if m.createFn != nil {
		return m.createFn(ctx, collab)
	}
	return collab.ID, nil
}

func (m *mockCollabRepo) Delete(ctx context.Context, playlistID, userID string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, playlistID, userID)
	}
	return 0, nil
}

func (m *mockCollabRepo) Exists(ctx context.Context, playlistID, userID string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, playlistID, userID)
	}
	return false, nil
}

type mockUserRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func errorKind(t *testing.T, err error) model.ErrorKind {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T: %v", err, err)
	}
	return apiErr.Kind
}

func TestService_Add_Success(t *testing.T) {
	collabRepo := &mockCollabRepo{}
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Username: "bob"}, nil
		},
	}
	svc := NewService(collabRepo, userRepo)

	id, err := svc.Add(context.Background(), "playlist-1", "user-guest")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if !strings.HasPrefix(id, "collab-") {
		t.Errorf("id = %q, want prefix %q", id, "collab-")
	}
	if collabRepo.created.PlaylistID != "playlist-1" || collabRepo.created.UserID != "user-guest" {
		t.Errorf("created collaboration = %+v, unexpected fields", collabRepo.created)
	}
}

func TestService_Add_UnknownUser_ReturnsNotFoundError(t *testing.T) {
	collabRepo := &mockCollabRepo{}
	svc := NewService(collabRepo, &mockUserRepo{})

	_, err := svc.Add(context.Background(), "playlist-1", "user-missing")
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	if kind := errorKind(t, err); kind != model.KindNotFound {
		t.Errorf("error kind = %q, want %q", kind, model.KindNotFound)
	}
	if collabRepo.created != nil {
		t.Error("expected Create not to be called for unknown user")
	}
}

func TestService_Delete_Success(t *testing.T) {
	collabRepo := &mockCollabRepo{
		deleteFn: func(ctx context.Context, playlistID, userID string) (int64, error) {
			return 1, nil
		},
	}
	svc := NewService(collabRepo, &mockUserRepo{})

	if err := svc.Delete(context.Background(), "playlist-1", "user-guest"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
}

func TestService_Delete_NoMatch_ReturnsInvariantError(t *testing.T) {
	svc := NewService(&mockCollabRepo{}, &mockUserRepo{})

	err := svc.Delete(context.Background(), "playlist-1", "user-guest")
	if err == nil {
		t.Fatal("expected error when no collaboration matches")
	}
	if kind := errorKind(t, err); kind != model.KindInvariant {
		t.Errorf("error kind = %q, want %q", kind, model.KindInvariant)
	}
}

func TestService_VerifyCollaborator_Found(t *testing.T) {
	collabRepo := &mockCollabRepo{
		existsFn: func(ctx context.Context, playlistID, userID string) (bool, error) {
			return true, nil
		},
	}
	svc := NewService(collabRepo, &mockUserRepo{})

	if err := svc.VerifyCollaborator(context.Background(), "playlist-1", "user-guest"); err != nil {
		t.Fatalf("VerifyCollaborator returned error: %v", err)
	}
}

func TestService_VerifyCollaborator_NotFound(t *testing.T) {
	svc := NewService(&mockCollabRepo{}, &mockUserRepo{})

	err := svc.VerifyCollaborator(context.Background(), "playlist-1", "user-guest")
	if err == nil {
		t.Fatal("expected error when collaboration does not exist")
	}
	if kind := errorKind(t, err); kind != model.KindNotFound {
		t.Errorf("error kind = %q, want %q", kind, model.KindNotFound)
	}
}
