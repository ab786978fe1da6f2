package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/riskwatch/internal/storage"
)

func useEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	configPath = ""
	for k, v := range kv {
		t.Setenv(k, v)
	}
	t.Setenv("RISKWATCH_LOGGING_LEVEL", "error")
}

func TestShowPrintsReport(t *testing.T) {
	useEnv(t, map[string]string{
		"RISKWATCH_STORAGE_DRIVER":           "memory",
		"RISKWATCH_FIXTURES_SYNTHETIC_COUNT": "0",
	})

	var out bytes.Buffer
	cmd := showCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"USR-001"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "CUSTOMER RISK REPORT")
	assert.Contains(t, out.String(), "Aryan Mehta (USR-001)")
}

func TestShowUnknownCustomer(t *testing.T) {
	useEnv(t, map[string]string{
		"RISKWATCH_STORAGE_DRIVER":           "memory",
		"RISKWATCH_FIXTURES_SYNTHETIC_COUNT": "0",
	})

	cmd := showCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"USR-404"})
	assert.ErrorIs(t, cmd.Execute(), storage.ErrNotFound)
}

func TestSeedReplacesContents(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "seed.db")
	useEnv(t, map[string]string{
		"RISKWATCH_STORAGE_DB_PATH": dbPath,
	})

	for _, count := range []string{"20", "5"} {
		var out bytes.Buffer
		cmd := seedCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--count", count, "--seed", "7"})
		require.NoError(t, cmd.Execute())
	}

	db, err := storage.New(dbPath)
	require.NoError(t, err)
	defer db.Close()
	n, err := db.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 17, n)
}

func TestSeedRejectsMemoryDriver(t *testing.T) {
	useEnv(t, map[string]string{"RISKWATCH_STORAGE_DRIVER": "memory"})

	cmd := seedCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
