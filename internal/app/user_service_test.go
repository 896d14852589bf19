package app

import (
	"errors"
	"testing"
)

func TestUserService_SetAdminStatus(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users)
	adminID := registerUser(t, users, "root", "root@example.com", "root-password")
	users.users[adminID].Admin = true
	targetID := registerUser(t, users, "alice", "alice@example.com", "some-password")

	member := Actor{ID: targetID, Username: "alice"}
	if err := svc.SetAdminStatus(member, targetID, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("SetAdminStatus as member = %v, want ErrForbidden", err)
	}
	if users.users[targetID].Admin {
		t.Fatal("forbidden call changed the admin flag")
	}

	admin := Actor{ID: adminID, Username: "root", Admin: true}
	if err := svc.SetAdminStatus(admin, targetID, true); err != nil {
		t.Fatalf("SetAdminStatus as admin: %v", err)
	}
	if !users.users[targetID].Admin {
		t.Fatal("admin flag was not set")
	}

	if err := svc.SetAdminStatus(admin, targetID, false); err != nil {
		t.Fatalf("revoke admin: %v", err)
	}
	if users.users[targetID].Admin {
		t.Fatal("admin flag was not cleared")
	}

	if err := svc.SetAdminStatus(admin, 999, true); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("SetAdminStatus on missing user = %v, want ErrUserNotFound", err)
	}
}

func TestUserService_ListAndDetailRequireAdmin(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users)
	id := registerUser(t, users, "alice", "alice@example.com", "some-password")

	member := Actor{ID: id, Username: "alice"}
	if _, err := svc.ListUsers(member, 1, 12); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ListUsers as member = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetUserDetail(Actor{}, id); !errors.Is(err, ErrForbidden) {
		t.Fatalf("GetUserDetail as anonymous = %v, want ErrForbidden", err)
	}

	admin := Actor{ID: 99, Username: "root", Admin: true}
	listed, err := svc.ListUsers(admin, 1, 12)
	if err != nil {
		t.Fatalf("ListUsers as admin: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("listed %d users, want 1", len(listed))
	}
	detail, err := svc.GetUserDetail(admin, id)
	if err != nil {
		t.Fatalf("GetUserDetail as admin: %v", err)
	}
	if detail.Username != "alice" {
		t.Errorf("detail username = %q, want alice", detail.Username)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users)
	adminID := registerUser(t, users, "root", "root@example.com", "root-password")
	users.users[adminID].Admin = true
	aliceID := registerUser(t, users, "alice", "alice@example.com", "some-password")
	bobID := registerUser(t, users, "bob", "bob@example.com", "some-password")

	alice := Actor{ID: aliceID, Username: "alice"}
	if _, err := svc.DeleteUser(alice, bobID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete other as member = %v, want ErrForbidden", err)
	}
	if _, err := svc.DeleteUser(Actor{}, bobID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete as anonymous = %v, want ErrForbidden", err)
	}

	adminDelete, err := svc.DeleteUser(alice, aliceID)
	if err != nil {
		t.Fatalf("self delete: %v", err)
	}
	if adminDelete {
		t.Error("self delete reported as admin delete")
	}
	if _, ok := users.users[aliceID]; ok {
		t.Fatal("alice was not deleted")
	}

	admin := Actor{ID: adminID, Username: "root", Admin: true}
	adminDelete, err = svc.DeleteUser(admin, bobID)
	if err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if !adminDelete {
		t.Error("admin delete of another user not reported as such")
	}

	if _, err := svc.DeleteUser(admin, bobID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("delete again = %v, want ErrUserNotFound", err)
	}
}
