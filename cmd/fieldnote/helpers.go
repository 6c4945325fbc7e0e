package main

import (
	"fmt"
	"path/filepath"

	"github.com/fieldnote/fieldnote/internal/classify"
	"github.com/fieldnote/fieldnote/internal/config"
	"github.com/fieldnote/fieldnote/internal/engine"
	"github.com/fieldnote/fieldnote/internal/speech"
	"github.com/fieldnote/fieldnote/internal/storage"

	"github.com/spf13/viper"
)

// initStorage opens the store under the application data directory,
// applying migrations.
func initStorage() (*storage.Store, string, error) {
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, "", err
	}

	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "fieldnote.db")
	} else {
		dbPath = config.ExpandPath(dbPath)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open storage: %w", err)
	}
	return store, dataDir, nil
}

// initEngine wires the full intake engine: storage, classifier, speech.
// The classifier is optional for commands that only read the store.
func initEngine(needClassifier bool) (*engine.Engine, *storage.Store, error) {
	store, dataDir, err := initStorage()
	if err != nil {
		return nil, nil, err
	}

	var classifier classify.Client
	if needClassifier {
		classifier, err = classify.NewGeminiClient(classify.Config{
			APIKey:  viper.GetString("classifier.api_key"),
			Model:   viper.GetString("classifier.model"),
			Timeout: viper.GetDuration("classifier.timeout"),
		})
		if err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to init classifier: %w", err)
		}
	}

	eng, err := engine.New(engine.Config{
		Store:       store,
		Classifier:  classifier,
		Models:      speech.NewModelCache(),
		Transcriber: speech.NewTranscriber(),
		DataDir:     dataDir,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	return eng, store, nil
}
