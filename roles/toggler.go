package roles

import (
	"github.com/ludobot/ludo/catalog"
)

// Membership is the role-membership collaborator. The production
// implementation talks to the discord guild, tests use a map-backed fake.
type Membership interface {
	HasRole(memberID string, roleID string) (bool, error)
	AddRole(memberID string, roleID string) error
	RemoveRole(memberID string, roleID string) error
}

// Notifier receives best-effort feedback about a completed toggle. Failures
// are the notifier's problem, they never fail the toggle itself.
type Notifier interface {
	RolesChanged(memberID string, added bool, gameNames []string)
}

// Toggler flips a member's role for a game and cascades through the
// hierarchy: removing a parent strips all held child roles, adding a sub
// role pulls in the missing parent role. The hierarchy allows one parent per
// game, so the cascade is a single level in either direction.
type Toggler struct {
	store      *catalog.Store
	membership Membership
	notifier   Notifier
}

func NewToggler(store *catalog.Store, membership Membership, notifier Notifier) *Toggler {
	return &Toggler{
		store:      store,
		membership: membership,
		notifier:   notifier,
	}
}

// Toggle adds the game's role if the member lacks it, removes it otherwise.
// Returns whether roles were added, and the names of all games whose roles
// changed. Callers pass ids taken from a live menu binding, so an unknown id
// is a consistency failure, not user input.
func (t *Toggler) Toggle(memberID string, gameID uint) (added bool, names []string, err error) {
	game, ok := t.store.Game(gameID)
	if !ok {
		return false, nil, &catalog.UnknownGameError{Name: t.store.GameName(gameID)}
	}

	hasRole, err := t.membership.HasRole(memberID, game.DiscordID)
	if err != nil {
		return false, nil, err
	}

	names = []string{game.Name}

	if hasRole {
		if err = t.membership.RemoveRole(memberID, game.DiscordID); err != nil {
			return false, nil, err
		}

		// a member should never hold a sub role without its parent
		for _, childID := range t.store.ChildGames(gameID) {
			child, ok := t.store.Game(childID)
			if !ok {
				continue
			}
			held, err := t.membership.HasRole(memberID, child.DiscordID)
			if err != nil {
				return false, names, err
			}
			if !held {
				continue
			}
			if err = t.membership.RemoveRole(memberID, child.DiscordID); err != nil {
				return false, names, err
			}
			names = append(names, child.Name)
		}
	} else {
		added = true
		if err = t.membership.AddRole(memberID, game.DiscordID); err != nil {
			return false, nil, err
		}

		// holding a sub role implies holding the parent
		if parentID, ok := t.store.ParentGame(gameID); ok {
			if parent, ok := t.store.Game(parentID); ok {
				held, err := t.membership.HasRole(memberID, parent.DiscordID)
				if err != nil {
					return added, names, err
				}
				if !held {
					if err = t.membership.AddRole(memberID, parent.DiscordID); err != nil {
						return added, names, err
					}
					names = append(names, parent.Name)
				}
			}
		}
	}

	t.notify(memberID, added, names)

	return added, names, nil
}

// notify fires the best-effort notification. Whatever the notifier does,
// the completed toggle stands.
func (t *Toggler) notify(memberID string, added bool, names []string) {
	if t.notifier == nil {
		return
	}
	defer func() { recover() }()
	t.notifier.RolesChanged(memberID, added, names)
}
