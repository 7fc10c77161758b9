package roles

import (
	"reflect"
	"sort"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/ludobot/ludo/catalog"
	"github.com/ludobot/ludo/models"
	"gorm.io/gorm"
)

type fakeMembership struct {
	roles map[string]bool
}

func (f *fakeMembership) HasRole(memberID string, roleID string) (bool, error) {
	return f.roles[memberID+"/"+roleID], nil
}

func (f *fakeMembership) AddRole(memberID string, roleID string) error {
	f.roles[memberID+"/"+roleID] = true
	return nil
}

func (f *fakeMembership) RemoveRole(memberID string, roleID string) error {
	delete(f.roles, memberID+"/"+roleID)
	return nil
}

type panicNotifier struct{}

func (panicNotifier) RolesChanged(string, bool, []string) {
	panic("notifier exploded")
}

func setupToggler(t *testing.T) (*catalog.Store, *fakeMembership, *Toggler) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Game{},
		&models.Alias{},
		&models.Admin{},
		&models.RoleMessage{},
		&models.SubGame{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store, err := catalog.NewStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	membership := &fakeMembership{roles: make(map[string]bool)}
	return store, membership, NewToggler(store, membership, nil)
}

func TestToggleAddPullsInParent(t *testing.T) {
	store, membership, toggler := setupToggler(t)

	parent, _ := store.AddGame("Halo", "1000")
	sub, _ := store.AddGame("Halo 3", "1001")
	store.AddSubGame(sub.ID, parent.ID)

	added, names, err := toggler.Toggle("member", sub.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !added {
		t.Fatal("toggle reported removal for a role the member lacked")
	}

	sort.Strings(names)
	if !reflect.DeepEqual(names, []string{"Halo", "Halo 3"}) {
		t.Fatalf("changed games %v, want sub and parent", names)
	}
	if !membership.roles["member/1000"] || !membership.roles["member/1001"] {
		t.Fatal("member missing a granted role")
	}

	// removing the sub role keeps the parent: only children cascade on removal
	added, names, err = toggler.Toggle("member", sub.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if added {
		t.Fatal("toggle reported addition for a held role")
	}
	if !reflect.DeepEqual(names, []string{"Halo 3"}) {
		t.Fatalf("changed games %v, want only the sub", names)
	}
	if !membership.roles["member/1000"] {
		t.Fatal("parent role removed by sub toggle")
	}
}

func TestToggleAddSkipsHeldParent(t *testing.T) {
	store, membership, toggler := setupToggler(t)

	parent, _ := store.AddGame("Halo", "1000")
	sub, _ := store.AddGame("Halo 3", "1001")
	store.AddSubGame(sub.ID, parent.ID)
	membership.roles["member/1000"] = true

	_, names, err := toggler.Toggle("member", sub.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Halo 3"}) {
		t.Fatalf("changed games %v, parent was already held", names)
	}
}

func TestToggleRemoveStripsHeldChildren(t *testing.T) {
	store, membership, toggler := setupToggler(t)

	parent, _ := store.AddGame("Battlefield", "2000")
	subA, _ := store.AddGame("Battlefield 4", "2001")
	subB, _ := store.AddGame("Battlefield 1", "2002")
	store.AddSubGame(subA.ID, parent.ID)
	store.AddSubGame(subB.ID, parent.ID)

	membership.roles["member/2000"] = true
	membership.roles["member/2001"] = true
	// subB's role is not held and must not appear in the result

	added, names, err := toggler.Toggle("member", parent.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if added {
		t.Fatal("toggle reported addition for a held role")
	}

	sort.Strings(names)
	if !reflect.DeepEqual(names, []string{"Battlefield", "Battlefield 4"}) {
		t.Fatalf("changed games %v, want parent plus held child", names)
	}
	if len(membership.roles) != 0 {
		t.Fatalf("roles left after parent removal: %v", membership.roles)
	}
}

func TestToggleUnknownGame(t *testing.T) {
	_, _, toggler := setupToggler(t)

	_, _, err := toggler.Toggle("member", 12345)
	if err == nil {
		t.Fatal("expected error for unknown game id")
	}
	if _, ok := err.(*catalog.UnknownGameError); !ok {
		t.Fatalf("expected *catalog.UnknownGameError, got %T", err)
	}
}

func TestToggleSurvivesNotifierPanic(t *testing.T) {
	store, _, _ := setupToggler(t)

	game, _ := store.AddGame("Rust", "3000")

	membership := &fakeMembership{roles: make(map[string]bool)}
	toggler := NewToggler(store, membership, panicNotifier{})

	defer func() {
		if recover() != nil {
			t.Fatal("notifier panic escaped the toggle")
		}
	}()

	_, _, err := toggler.Toggle("member", game.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !membership.roles["member/3000"] {
		t.Fatal("role not granted")
	}
}
