package company

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Store holds the company profile loaded once at startup. The settings
// flow calls Reload after editing the JSON; the watcher picks up
// out-of-band edits to the file.
type Store struct {
	mu      sync.RWMutex
	log     *zap.Logger
	path    string
	profile Profile
}

func NewStore(path string, log *zap.Logger) (*Store, error) {
	s := &Store{
		log:  log.Named("company.store"),
		path: path,
	}
	if err := s.Reload(); err != nil {
		return nil, fmt.Errorf("load company profile: %w", err)
	}
	return s, nil
}

// Get returns the current profile snapshot.
func (s *Store) Get() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Reload re-reads the profile JSON from disk. A missing file is not an
// error; the store keeps an empty profile so tax determination falls
// back to intrastate.
func (s *Store) Reload() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.log.Warn("company profile not found, using empty profile", zap.String("path", s.path))
		s.mu.Lock()
		s.profile = Profile{}
		s.mu.Unlock()
		return nil
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return err
	}

	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()

	s.log.Info("company profile loaded", zap.String("gstin", p.GSTIN), zap.String("state_code", p.Address.StateCode))
	return nil
}

// Watch reloads the profile whenever the file changes on disk.
// The returned stop function closes the watcher.
func (s *Store) Watch() (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := s.Reload(); err != nil {
					s.log.Warn("company profile reload failed", zap.Error(err))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("company profile watcher error", zap.Error(err))
			}
		}
	}()

	return watcher.Close, nil
}
