package ranking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemStore(t *testing.T) {
	s := NewMemStore()

	_, err := s.Rankings(t.Context(), "l1")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Profile(t.Context(), "u1")
	require.ErrorIs(t, err, ErrNotFound)

	s.PutRanking(&LeagueRanking{LeagueID: "l1", Name: "Alpha", Rows: []RankRow{
		{Rank: 1, UserID: "u1", Username: "ada", Points: 30},
	}})
	s.PutProfile(&UserProfile{UserID: "u1", Username: "ada"})

	r, err := s.Rankings(t.Context(), "l1")
	require.NoError(t, err)
	require.Equal(t, "Alpha", r.Name)
	require.Len(t, r.Rows, 1)

	p, err := s.Profile(t.Context(), "u1")
	require.NoError(t, err)
	require.Equal(t, "ada", p.Username)
}

func TestKeys(t *testing.T) {
	require.Equal(t, "league:42", LeagueKey("42"))
	require.Equal(t, "profile:u7", ProfileKey("u7"))

	id, ok := ParseLeagueKey("league:42")
	require.True(t, ok)
	require.Equal(t, "42", id)

	_, ok = ParseLeagueKey("profile:u7")
	require.False(t, ok)

	id, ok = ParseProfileKey("profile:u7")
	require.True(t, ok)
	require.Equal(t, "u7", id)
}
