package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/sehatbeat/internal/api"
	"github.com/dmitrijs2005/sehatbeat/internal/server/config"
	"github.com/dmitrijs2005/sehatbeat/internal/server/notify"
	"github.com/dmitrijs2005/sehatbeat/internal/server/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.LogLevel = "error"
	return c
}

func TestOpenStore(t *testing.T) {
	c := testConfig()

	st, err := openStore(context.Background(), c)
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, st)

	c.StoreKind = "cassandra"
	_, err = openStore(context.Background(), c)
	require.Error(t, err)
}

func TestOpenBroker_DefaultsToHub(t *testing.T) {
	b, err := openBroker(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	defer b.Close()
	assert.IsType(t, &notify.Hub{}, b)
}

func TestNewPresigner(t *testing.T) {
	c := testConfig()
	assert.Nil(t, newPresigner(c))

	c.S3Bucket = "docs"
	assert.NotNil(t, newPresigner(c))
}

func TestNewApp_SeedsMemoryStore(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	resp, err := app.service.GetMedicines(context.Background(), &api.GetMedicinesRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Medicines)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	c := testConfig()
	c.RequireAuth = true
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c)
	require.ErrorContains(t, err, "config error")
}
