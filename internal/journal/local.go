package journal

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/desertthunder/vibecheck/internal/shared"
	"github.com/peterbourgon/diskv/v3"
)

// keyPrefix names each day's slot, e.g. journal-entry-2025-06-01.
const keyPrefix = "journal-entry-"

// localUser owns entries written without a signed-in user.
const localUser = "local"

// LocalStore keeps entries as files under a base directory, one directory per user.
//
// Values are stored and read back verbatim.
type LocalStore struct {
	d *diskv.Diskv
}

// NewLocalStore creates a [LocalStore] rooted at basePath.
func NewLocalStore(basePath string) *LocalStore {
	return &LocalStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}
}

func (s *LocalStore) Get(_ context.Context, userID, date string) (string, error) {
	val, err := s.d.Read(toKey(userID, date))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("journal entry %s: %w", date, shared.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read journal entry: %w", err)
	}
	return string(val), nil
}

func (s *LocalStore) Put(_ context.Context, userID, date, content string) error {
	if err := s.d.Write(toKey(userID, date), []byte(content)); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}
	return nil
}

// Dates lists the days with a stored entry for userID, newest first.
func (s *LocalStore) Dates(ctx context.Context, userID string) []string {
	prefix := userDir(userID) + "/" + keyPrefix

	var dates []string
	for key := range s.d.KeysPrefix(prefix, ctx.Done()) {
		dates = append(dates, strings.TrimPrefix(key, prefix))
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// toKey makes `user/journal-entry-date`
func toKey(userID, date string) string {
	return userDir(userID) + "/" + keyPrefix + date
}

func userDir(userID string) string {
	if userID == "" {
		return localUser
	}
	return base64.RawURLEncoding.EncodeToString([]byte(userID))
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), "/")
}
