// Package nats implements the ranking document store over NATS JetStream
// key-value buckets, one bucket per document kind, JSON payloads.
package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/codewandler/rankcache/ports/ranking"
)

const (
	defaultRankingsBucket = "league_rankings"
	defaultProfilesBucket = "user_profiles"
)

type DocumentStoreConfig struct {
	// Connect defaults to ConnectDefault.
	Connect Connector
	// RankingsBucket / ProfilesBucket default to "league_rankings" and
	// "user_profiles".
	RankingsBucket string
	ProfilesBucket string
}

// DocumentStore is a ranking.Store backed by JetStream KV. Missing keys
// map to ranking.ErrNotFound; every other error surfaces as-is — the
// caching layer treats them all the same anyway.
type DocumentStore struct {
	rankings jetstream.KeyValue
	profiles jetstream.KeyValue
	close    closeFunc
}

func NewDocumentStore(ctx context.Context, cfg DocumentStoreConfig) (*DocumentStore, error) {
	doConnect := cfg.Connect
	if doConnect == nil {
		doConnect = ConnectDefault()
	}
	if cfg.RankingsBucket == "" {
		cfg.RankingsBucket = defaultRankingsBucket
	}
	if cfg.ProfilesBucket == "" {
		cfg.ProfilesBucket = defaultProfilesBucket
	}

	nc, closeCon, err := doConnect()
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		closeCon()
		return nil, err
	}

	rankings, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  cfg.RankingsBucket,
		Storage: jetstream.FileStorage,
	})
	if err != nil {
		closeCon()
		return nil, fmt.Errorf("create rankings bucket: %w", err)
	}

	profiles, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  cfg.ProfilesBucket,
		Storage: jetstream.FileStorage,
	})
	if err != nil {
		closeCon()
		return nil, fmt.Errorf("create profiles bucket: %w", err)
	}

	return &DocumentStore{
		rankings: rankings,
		profiles: profiles,
		close:    closeCon,
	}, nil
}

// Close releases the underlying connection.
func (s *DocumentStore) Close() {
	s.close()
}

func (s *DocumentStore) Rankings(ctx context.Context, leagueID string) (*ranking.LeagueRanking, error) {
	return getJSON[ranking.LeagueRanking](ctx, s.rankings, leagueID)
}

func (s *DocumentStore) Profile(ctx context.Context, userID string) (*ranking.UserProfile, error) {
	return getJSON[ranking.UserProfile](ctx, s.profiles, userID)
}

// PutRanking writes a standings document; used by seeding jobs and tests.
func (s *DocumentStore) PutRanking(ctx context.Context, r *ranking.LeagueRanking) error {
	return putJSON(ctx, s.rankings, r.LeagueID, r)
}

// PutProfile writes a profile document; used by seeding jobs and tests.
func (s *DocumentStore) PutProfile(ctx context.Context, p *ranking.UserProfile) error {
	return putJSON(ctx, s.profiles, p.UserID, p)
}

func getJSON[T any](ctx context.Context, kv jetstream.KeyValue, key string) (*T, error) {
	v, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, ranking.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	out := new(T)
	if err := json.Unmarshal(v.Value(), out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

func putJSON(ctx context.Context, kv jetstream.KeyValue, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = kv.Put(ctx, key, data)
	return err
}

var _ ranking.Store = (*DocumentStore)(nil)
