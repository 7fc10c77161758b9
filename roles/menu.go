package roles

import (
	"strings"
	"unicode/utf8"

	"github.com/bradfitz/slice"
	"github.com/ludobot/ludo/catalog"
	"github.com/ludobot/ludo/models"
)

const (
	// GamesPerPage is the page size for automatically generated menus.
	GamesPerPage = 9

	// MaxGamesPerMenu caps manual menus, bounded by the keypad alphabet.
	MaxGamesPerMenu = catalog.MaxMenuGames
)

// MenuPage is one role menu message worth of games with its category label.
type MenuPage struct {
	Category string
	Games    []models.Game
}

// BuildMenuPages partitions the catalog into menu pages. $misc games are
// appended after the alphabetically sorted remainder, in the order supplied,
// and never influence a page's letter range.
func BuildMenuPages(all []models.Game, misc []models.Game) []MenuPage {
	sorted := make([]models.Game, 0, len(all))
	for _, game := range all {
		if containsGame(misc, game.ID) {
			continue
		}
		sorted = append(sorted, game)
	}
	slice.Sort(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	lenNoMisc := len(sorted)
	sorted = append(sorted, misc...)

	var pages []MenuPage
	for x := 0; x < len(sorted); x += GamesPerPage {
		end := x + GamesPerPage
		if end > len(sorted) {
			end = len(sorted)
		}
		games := sorted[x:end]

		// if the last game of the page sits past the sorted portion the page
		// carries misc games; if the first one does, the page is misc only
		hasMisc := len(misc) > 0 && x+GamesPerPage-1 >= lenNoMisc
		onlyMisc := len(misc) > 0 && x >= lenNoMisc

		pages = append(pages, MenuPage{
			Category: categoryLabel(sorted, games, lenNoMisc, hasMisc, onlyMisc),
			Games:    games,
		})
	}

	return pages
}

// categoryLabel derives the page label from the first letters of the first
// and last game. A page straddling the misc boundary uses the last sorted
// game instead, so the letter range reflects only the alphabetical portion.
func categoryLabel(sorted []models.Game, games []models.Game, lenNoMisc int, hasMisc bool, onlyMisc bool) string {
	if onlyMisc {
		return "Misc."
	}

	lastGame := games[len(games)-1]
	if hasMisc {
		lastGame = sorted[lenNoMisc-1]
	}

	label := firstLetter(games[0].Name) + "-" + firstLetter(lastGame.Name)

	if hasMisc {
		label += " + Misc."
	}
	return label
}

// firstLetter returns the uppercased first rune of $name
func firstLetter(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}

func containsGame(games []models.Game, id uint) bool {
	for _, game := range games {
		if game.ID == id {
			return true
		}
	}
	return false
}
