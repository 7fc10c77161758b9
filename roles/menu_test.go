package roles

import (
	"testing"

	"github.com/ludobot/ludo/models"
)

func makeGames(names ...string) []models.Game {
	games := make([]models.Game, len(names))
	for i, name := range names {
		games[i] = models.Game{ID: uint(i + 1), Name: name}
	}
	return games
}

func TestBuildMenuPagesPlain(t *testing.T) {
	names := []string{
		"Terraria", "Overwatch", "Apex", "Rust", "Minecraft",
		"Factorio", "Valheim", "Dota 2", "Celeste", "Hades",
		"Noita", "Quake", "Brawlhalla", "Warframe", "Unturned",
		"Skyrim", "Isaac", "Journey", "League", "Gris",
	}
	pages := BuildMenuPages(makeGames(names...), nil)

	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	for i, want := range []int{9, 9, 2} {
		if len(pages[i].Games) != want {
			t.Fatalf("page %d has %d games, want %d", i, len(pages[i].Games), want)
		}
	}

	if pages[0].Games[0].Name != "Apex" {
		t.Fatalf("first game is %q, want alphabetical order", pages[0].Games[0].Name)
	}
	if pages[0].Category != "A-J" {
		t.Fatalf("page 0 category %q, want A-J", pages[0].Category)
	}
	if pages[2].Category != "V-W" {
		t.Fatalf("page 2 category %q, want V-W", pages[2].Category)
	}
}

func TestBuildMenuPagesMiscTrailing(t *testing.T) {
	games := makeGames(
		"Terraria", "Overwatch", "Apex", "Rust", "Minecraft",
		"Factorio", "Valheim", "Dota 2", "Celeste", "Hades",
		"Noita", "Quake", "Brawlhalla", "Warframe", "Unturned",
		"Skyrim", "Isaac", "Journey", "League", "Gris",
	)
	misc := []models.Game{games[0], games[3]} // Terraria, Rust

	pages := BuildMenuPages(games, misc)

	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}

	last := pages[2].Games
	if len(last) != 2 {
		t.Fatalf("last page has %d games, want 2", len(last))
	}
	// misc games keep their supplied order at the very end
	if last[0].Name != "Terraria" || last[1].Name != "Rust" {
		t.Fatalf("misc games misplaced: %q, %q", last[0].Name, last[1].Name)
	}
	if pages[2].Category != "Misc." {
		t.Fatalf("misc-only page labeled %q, want Misc.", pages[2].Category)
	}
}

func TestBuildMenuPagesStraddlingPage(t *testing.T) {
	games := makeGames("Apex", "Brawlhalla", "Celeste", "Dota 2", "Factorio")
	misc := []models.Game{games[4], games[3]} // Factorio, Dota 2

	pages := BuildMenuPages(games, misc)

	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	// the letter range must stop at the last sorted game, not the misc tail
	if pages[0].Category != "A-C + Misc." {
		t.Fatalf("category %q, want A-C + Misc.", pages[0].Category)
	}
	names := pages[0].Games
	if names[len(names)-1].Name != "Dota 2" || names[len(names)-2].Name != "Factorio" {
		t.Fatal("misc games not appended in supplied order")
	}
}

func TestBuildMenuPagesMultibyteNames(t *testing.T) {
	games := makeGames("Überwatch", "Édelweiss", "Ôdyssey")

	pages := BuildMenuPages(games, nil)

	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	// the label takes whole runes, not the leading byte
	if pages[0].Category != "É-Ü" {
		t.Fatalf("category %q, want É-Ü", pages[0].Category)
	}
}

func TestBuildMenuPagesEmpty(t *testing.T) {
	if pages := BuildMenuPages(nil, nil); len(pages) != 0 {
		t.Fatalf("got %d pages for empty catalog, want 0", len(pages))
	}
}
