package catalog

import (
	"reflect"
	"sort"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/ludobot/ludo/models"
	"gorm.io/gorm"
)

func setupStore(t *testing.T) *Store {
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

	store, err := NewStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestAddGameRejectsDuplicateNames(t *testing.T) {
	store := setupStore(t)

	if _, err := store.AddGame("Overwatch", "100"); err != nil {
		t.Fatalf("add game: %v", err)
	}

	if _, err := store.AddGame("overwatch", "101"); err == nil {
		t.Fatal("expected duplicate name error for case-insensitive game collision")
	} else if _, ok := err.(*DuplicateNameError); !ok {
		t.Fatalf("expected *DuplicateNameError, got %T", err)
	}

	if _, err := store.AddAlias("Overwatch", "OW"); err != nil {
		t.Fatalf("add alias: %v", err)
	}

	// a game may not take an existing alias name either
	if _, err := store.AddGame("ow", "102"); err == nil {
		t.Fatal("expected duplicate name error for game colliding with alias")
	}

	// nor an alias an existing game name
	if _, err := store.AddAlias("Overwatch", "OVERWATCH"); err == nil {
		t.Fatal("expected duplicate name error for alias colliding with game")
	}
}

func TestFindGameAliasResolution(t *testing.T) {
	store := setupStore(t)

	game, err := store.AddGame("League of Legends", "200")
	if err != nil {
		t.Fatalf("add game: %v", err)
	}
	if _, err := store.AddAlias("League of Legends", "LoL"); err != nil {
		t.Fatalf("add alias: %v", err)
	}

	if _, ok := store.FindGame("lol", false); ok {
		t.Fatal("alias resolved without includeAliases")
	}

	found, ok := store.FindGame("lol", true)
	if !ok {
		t.Fatal("alias did not resolve with includeAliases")
	}
	if found.ID != game.ID {
		t.Fatalf("alias resolved to game %d, want %d", found.ID, game.ID)
	}

	// AddAlias matches the target by game name only, never via alias
	if _, err := store.AddAlias("LoL", "League"); err == nil {
		t.Fatal("expected unknown game error when targeting an alias name")
	} else if _, ok := err.(*UnknownGameError); !ok {
		t.Fatalf("expected *UnknownGameError, got %T", err)
	}
}

func TestRemoveGameCascades(t *testing.T) {
	store := setupStore(t)

	parent, _ := store.AddGame("Battlefield", "300")
	child, _ := store.AddGame("Battlefield 4", "301")
	other, _ := store.AddGame("Besiege", "302")

	if _, err := store.AddAlias("Battlefield", "BF"); err != nil {
		t.Fatalf("add alias: %v", err)
	}
	if ok, _ := store.AddSubGame(child.ID, parent.ID); !ok {
		t.Fatal("add sub game failed")
	}
	if ok, _ := store.AddSubGame(other.ID, parent.ID); !ok {
		t.Fatal("add sub game failed")
	}

	ok, err := store.RemoveGame(parent.ID)
	if err != nil {
		t.Fatalf("remove game: %v", err)
	}
	if !ok {
		t.Fatal("remove game returned false for known game")
	}

	if _, ok := store.Game(parent.ID); ok {
		t.Fatal("game still cached after removal")
	}
	if _, ok := store.FindAlias("BF"); ok {
		t.Fatal("alias survived its game's removal")
	}
	if children := store.ChildGames(parent.ID); len(children) != 0 {
		t.Fatalf("reverse index still returns %v after parent removal", children)
	}
	if _, ok := store.ParentGame(child.ID); ok {
		t.Fatal("child still linked to removed parent")
	}

	// a fresh store from the same database must agree
	reloaded, err := NewStore(store.db)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	if _, ok := reloaded.FindGame("Battlefield", true); ok {
		t.Fatal("removed game still present in database")
	}
	if _, ok := reloaded.ParentGame(child.ID); ok {
		t.Fatal("hierarchy link still present in database")
	}
}

func TestRemoveChildGameDetachesParentIndex(t *testing.T) {
	store := setupStore(t)

	parent, _ := store.AddGame("Warcraft", "400")
	child, _ := store.AddGame("Warcraft 3", "401")
	store.AddSubGame(child.ID, parent.ID)

	if ok, _ := store.RemoveGame(child.ID); !ok {
		t.Fatal("remove child failed")
	}

	if children := store.ChildGames(parent.ID); len(children) != 0 {
		t.Fatalf("reverse index returns stale child: %v", children)
	}
}

func TestAddSubGameOneParentInvariant(t *testing.T) {
	store := setupStore(t)

	parentA, _ := store.AddGame("Halo", "500")
	parentB, _ := store.AddGame("Destiny", "501")

	var subs []uint
	for _, name := range []string{"Halo 2", "Halo 3", "Halo Reach"} {
		game, _ := store.AddGame(name, "510")
		subs = append(subs, game.ID)
		if ok, err := store.AddSubGame(game.ID, parentA.ID); err != nil || !ok {
			t.Fatalf("add sub game %s: ok=%v err=%v", name, ok, err)
		}
	}

	if ok, _ := store.AddSubGame(subs[0], parentB.ID); ok {
		t.Fatal("sub game accepted a second parent")
	}

	children := store.ChildGames(parentA.ID)
	sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
	sort.Slice(subs, func(i, j int) bool { return subs[i] < subs[j] })
	if !reflect.DeepEqual(children, subs) {
		t.Fatalf("child games %v, want %v", children, subs)
	}

	if ok, _ := store.RemoveSubGame(subs[1]); !ok {
		t.Fatal("remove sub game failed")
	}
	if ok, _ := store.RemoveSubGame(subs[1]); ok {
		t.Fatal("remove sub game succeeded twice")
	}
	if len(store.ChildGames(parentA.ID)) != 2 {
		t.Fatal("reverse index not updated after sub game removal")
	}
}

func TestMenuBindings(t *testing.T) {
	store := setupStore(t)

	a, _ := store.AddGame("Apex", "600")
	b, _ := store.AddGame("Arma", "601")

	if ok, err := store.AddMenuBinding("9000", []uint{b.ID, a.ID}); err != nil || !ok {
		t.Fatalf("add binding: ok=%v err=%v", ok, err)
	}
	if ok, _ := store.AddMenuBinding("9000", []uint{a.ID}); ok {
		t.Fatal("second binding for the same message accepted")
	}

	ids, ok := store.MenuBinding("9000")
	if !ok {
		t.Fatal("binding missing")
	}
	// order is significant: it defines the keypad index mapping
	if !reflect.DeepEqual(ids, []uint{b.ID, a.ID}) {
		t.Fatalf("binding order %v, want %v", ids, []uint{b.ID, a.ID})
	}

	if ok, _ := store.RemoveMenuBinding("9000"); !ok {
		t.Fatal("remove binding failed")
	}
	if ok, _ := store.RemoveMenuBinding("9000"); ok {
		t.Fatal("remove binding succeeded twice")
	}
}

func TestAddMenuBindingRejectsOversizeBindings(t *testing.T) {
	store := setupStore(t)

	ids := make([]uint, MaxMenuGames+1)
	for i := range ids {
		ids[i] = uint(i + 1)
	}

	// index 10 could never be reached through the keypad
	if ok, err := store.AddMenuBinding("9100", ids); ok || err == nil {
		t.Fatalf("oversize binding accepted: ok=%v err=%v", ok, err)
	}
	if _, ok := store.MenuBinding("9100"); ok {
		t.Fatal("oversize binding cached")
	}

	if ok, err := store.AddMenuBinding("9100", ids[:MaxMenuGames]); err != nil || !ok {
		t.Fatalf("full-size binding rejected: ok=%v err=%v", ok, err)
	}
}

func TestAdmins(t *testing.T) {
	store := setupStore(t)

	if ok, err := store.AddAdmin("42"); err != nil || !ok {
		t.Fatalf("add admin: ok=%v err=%v", ok, err)
	}
	if ok, _ := store.AddAdmin("42"); ok {
		t.Fatal("duplicate admin accepted")
	}
	if !store.IsAdmin("42") {
		t.Fatal("admin not cached")
	}

	// the delete is issued even for uncached ids, to heal drift
	store.db.Create(&models.Admin{DiscordID: "99"})
	if err := store.RemoveAdmin("99"); err != nil {
		t.Fatalf("remove admin: %v", err)
	}
	var count int64
	store.db.Model(&models.Admin{}).Where("discord_id = ?", "99").Count(&count)
	if count != 0 {
		t.Fatal("drifted admin row survived the delete")
	}

	if err := store.RemoveAdmin("42"); err != nil {
		t.Fatalf("remove admin: %v", err)
	}
	if store.IsAdmin("42") {
		t.Fatal("admin still cached after removal")
	}
}

func TestReloadAllPreservesState(t *testing.T) {
	store := setupStore(t)

	parent, _ := store.AddGame("Terraria", "700")
	child, _ := store.AddGame("tModLoader", "701")
	store.AddAlias("Terraria", "Terra")
	store.AddSubGame(child.ID, parent.ID)
	store.AddAdmin("7")
	store.AddMenuBinding("1234", []uint{parent.ID, child.ID})

	before := snapshot(store)

	if err := store.ReloadAll(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	after := snapshot(store)
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("state changed across reload:\nbefore: %#v\nafter:  %#v", before, after)
	}
}

type storeSnapshot struct {
	Games    []models.Game
	Aliases  []string
	Admin    bool
	Binding  []uint
	Parent   uint
	Children []uint
}

func snapshot(store *Store) storeSnapshot {
	games := store.Games()
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })

	var aliases []string
	if alias, ok := store.FindAlias("Terra"); ok {
		aliases = append(aliases, alias.Alias)
	}

	binding, _ := store.MenuBinding("1234")

	parentGame, _ := store.FindGame("Terraria", false)
	childGame, _ := store.FindGame("tModLoader", false)
	parent, _ := store.ParentGame(childGame.ID)

	return storeSnapshot{
		Games:    games,
		Aliases:  aliases,
		Admin:    store.IsAdmin("7"),
		Binding:  binding,
		Parent:   parent,
		Children: store.ChildGames(parentGame.ID),
	}
}
