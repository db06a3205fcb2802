package ranking

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// RankRow is one line of a league standings table.
type RankRow struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// LeagueRanking is the full standings document for one league.
type LeagueRanking struct {
	LeagueID  string    `json:"leagueId"`
	Name      string    `json:"name"`
	Season    string    `json:"season"`
	Rows      []RankRow `json:"rows"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LeagueRef is a league membership as seen from a profile.
type LeagueRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserProfile is the per-user document backing the profile views.
type UserProfile struct {
	UserID      string      `json:"userId"`
	Username    string      `json:"username"`
	AvatarURL   string      `json:"avatarUrl"`
	Leagues     []LeagueRef `json:"leagues"`
	GamesPlayed int         `json:"gamesPlayed"`
	GamesWon    int         `json:"gamesWon"`
	TotalPoints int         `json:"totalPoints"`
}

// Store is the remote document store the cache sits in front of. Errors
// are opaque to the caching layer: transport failures and ErrNotFound are
// treated identically (propagated, never cached, no retry).
type Store interface {
	// Rankings loads the standings document for a league.
	Rankings(ctx context.Context, leagueID string) (*LeagueRanking, error)
	// Profile loads a user profile document.
	Profile(ctx context.Context, userID string) (*UserProfile, error)
}

const (
	leagueKeyPrefix  = "league:"
	profileKeyPrefix = "profile:"
)

// LeagueKey builds the cache key for a league standings document.
func LeagueKey(leagueID string) string { return leagueKeyPrefix + leagueID }

// ProfileKey builds the cache key for a user profile document.
func ProfileKey(userID string) string { return profileKeyPrefix + userID }

// ParseLeagueKey returns the league ID for a key built by LeagueKey.
func ParseLeagueKey(key string) (string, bool) {
	return strings.CutPrefix(key, leagueKeyPrefix)
}

// ParseProfileKey returns the user ID for a key built by ProfileKey.
func ParseProfileKey(key string) (string, bool) {
	return strings.CutPrefix(key, profileKeyPrefix)
}
