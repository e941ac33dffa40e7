package session

import (
	"errors"
	"regexp"
	"strings"
)

// Status values for the per-user conversational state machine.
const (
	// StatusIdle is the default state.
	StatusIdle = ""
	// StatusNamingFavorite means the next text message is the alias for the
	// favorite stop(s) currently pending a name.
	StatusNamingFavorite = "naming_fav"
)

// MaxRecentStops caps the recent-stops history length.
const MaxRecentStops = 8

// ErrNameRejected signals a favorite alias failing the minimum-content check.
var ErrNameRejected = errors.New("session: favorite name needs at least two alphanumeric characters")

var favoriteNameRe = regexp.MustCompile(`\w{2,}`)

// RecentStop is one entry of the recently-queried history.
type RecentStop struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Session is the persisted per-user record: conversational status, favorite
// stops, recent stops and zone filter selections.
//
// FavStops maps stop codes to display aliases; an empty alias marks a
// favorite still awaiting its name (aliases are always at least two
// characters once committed).
type Session struct {
	UserID      int64             `json:"user_id"`
	Status      string            `json:"status"`
	FavStops    map[string]string `json:"fav_stops"`
	RecentStops []RecentStop      `json:"recent_stops"`
	Zones       []string          `json:"zones"`
}

// New returns an idle session for the given user.
func New(userID int64) *Session {
	return &Session{UserID: userID}
}

// Clone returns a deep copy, so stores can hand out sessions without
// aliasing their internal state.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := &Session{
		UserID: s.UserID,
		Status: s.Status,
	}
	if s.FavStops != nil {
		out.FavStops = make(map[string]string, len(s.FavStops))
		for code, name := range s.FavStops {
			out.FavStops[code] = name
		}
	}
	if s.RecentStops != nil {
		out.RecentStops = append([]RecentStop(nil), s.RecentStops...)
	}
	if s.Zones != nil {
		out.Zones = append([]string(nil), s.Zones...)
	}
	return out
}

// NamingFavorite reports whether the user is being asked for a favorite alias.
func (s *Session) NamingFavorite() bool {
	return s.Status == StatusNamingFavorite
}

// IsFavorite reports whether the stop code is saved as a favorite.
func (s *Session) IsFavorite(code string) bool {
	_, ok := s.FavStops[code]
	return ok
}

// FavoriteCodeByAlias resolves a committed favorite alias back to its stop
// code. Pending (unnamed) favorites never match.
func (s *Session) FavoriteCodeByAlias(alias string) (string, bool) {
	for code, name := range s.FavStops {
		if name != "" && name == alias {
			return code, true
		}
	}
	return "", false
}

// BeginFavoriteNaming provisionally stores the stop as an unnamed favorite
// and moves the machine into the naming state.
func (s *Session) BeginFavoriteNaming(code string) {
	if s.FavStops == nil {
		s.FavStops = make(map[string]string)
	}
	s.FavStops[code] = ""
	s.Status = StatusNamingFavorite
}

// CommitFavoriteName validates the alias and applies it to every favorite
// currently pending a name, returning to idle. A rejected alias leaves the
// session untouched so the caller can re-prompt.
func (s *Session) CommitFavoriteName(name string) error {
	if !favoriteNameRe.MatchString(name) {
		return ErrNameRejected
	}
	for code, existing := range s.FavStops {
		if existing == "" {
			s.FavStops[code] = name
		}
	}
	s.Status = StatusIdle
	return nil
}

// CancelFavoriteNaming discards pending unnamed favorites and returns to
// idle. It reports whether a naming flow was actually in progress.
func (s *Session) CancelFavoriteNaming() bool {
	if !s.NamingFavorite() {
		return false
	}
	for code, name := range s.FavStops {
		if name == "" {
			delete(s.FavStops, code)
		}
	}
	s.Status = StatusIdle
	return true
}

// RemoveFavorite deletes a favorite and returns its alias.
func (s *Session) RemoveFavorite(code string) (string, bool) {
	name, ok := s.FavStops[code]
	if !ok {
		return "", false
	}
	delete(s.FavStops, code)
	return name, true
}

// PushRecent records a direct-hit stop at the front of the history. An
// already-most-recent stop is left alone; a stop present deeper in the
// history moves to the front without duplication. The history is capped at
// MaxRecentStops entries.
func (s *Session) PushRecent(code, name string) {
	if len(s.RecentStops) > 0 && s.RecentStops[0].Code == code {
		return
	}
	entry := RecentStop{Code: code, Name: name}
	out := make([]RecentStop, 0, len(s.RecentStops)+1)
	out = append(out, entry)
	for _, r := range s.RecentStops {
		if r.Code == code {
			continue
		}
		out = append(out, r)
	}
	if len(out) > MaxRecentStops {
		out = out[:MaxRecentStops]
	}
	s.RecentStops = out
}

// ToggleZone flips the zone code in the filter set and reports whether it is
// now selected.
func (s *Session) ToggleZone(code string) bool {
	for i, z := range s.Zones {
		if z == code {
			s.Zones = append(s.Zones[:i], s.Zones[i+1:]...)
			return false
		}
	}
	s.Zones = append(s.Zones, code)
	return true
}

// ZoneSummary renders the selected zone names for user-facing messages.
func (s *Session) ZoneSummary(nameOf func(string) string) string {
	if len(s.Zones) == 0 {
		return ""
	}
	names := make([]string, 0, len(s.Zones))
	for _, z := range s.Zones {
		names = append(names, nameOf(z))
	}
	return strings.Join(names, ", ")
}
