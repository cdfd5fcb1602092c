/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package helper provides helper functions for testing.
package helper

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"testing"
	gotime "time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomongo "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/yorkie-team/coedit/api/types/events"
	"github.com/yorkie-team/coedit/client"
	"github.com/yorkie-team/coedit/server"
	"github.com/yorkie-team/coedit/server/backend"
	"github.com/yorkie-team/coedit/server/backend/database/mongo"
	"github.com/yorkie-team/coedit/server/backend/housekeeping"
	"github.com/yorkie-team/coedit/server/profiling"
	"github.com/yorkie-team/coedit/server/rpc"
)

var testStartedAt int64

// Below are the values of the coedit config used in the test.
var (
	RPCPort = 11101

	ProfilingPort = 11102

	HousekeepingInterval       = 10 * gotime.Second
	CollaboratorStaleThreshold = 5 * gotime.Minute

	SnapshotInterval       = 1 * gotime.Second
	SubscriptionBufferSize = 64
	PublishTimeout         = 100 * gotime.Millisecond

	AuthWebhookMaxWaitInterval = 3 * gotime.Millisecond
	AuthWebhookRequestTimeout  = 100 * gotime.Millisecond
	AuthWebhookSize            = 100
	AuthWebhookCacheTTL        = 10 * gotime.Second

	MongoConnectionURI     = "mongodb://localhost:27017"
	MongoConnectionTimeout = "5s"
	MongoPingTimeout       = "5s"

	// EventTimeout is how long ReceiveEvent waits for an event.
	EventTimeout = 5 * gotime.Second
)

func init() {
	testStartedAt = gotime.Now().Unix()
}

// TestDBName returns the name of test database with timestamp.
// timestamp is set only once on first call.
func TestDBName() string {
	return fmt.Sprintf("test-%s-%d", server.DefaultMongoDatabase, testStartedAt)
}

var portOffset = 0

// TestConfig returns config for creating coedit instance. Snapshots are
// kept in the memory database.
func TestConfig() *server.Config {
	portOffset += 100
	return &server.Config{
		RPC: &rpc.Config{
			Port:            RPCPort + portOffset,
			MaxRequestBytes: server.DefaultRPCMaxRequestBytes,
			PingInterval:    server.DefaultRPCPingInterval.String(),
			WriteTimeout:    server.DefaultRPCWriteTimeout.String(),
		},
		Profiling: &profiling.Config{
			Port: ProfilingPort + portOffset,
		},
		Housekeeping: &housekeeping.Config{
			Interval:                   HousekeepingInterval.String(),
			CollaboratorStaleThreshold: CollaboratorStaleThreshold.String(),
		},
		Backend: &backend.Config{
			SnapshotEnabled:            true,
			SnapshotInterval:           SnapshotInterval.String(),
			SubscriptionBufferSize:     SubscriptionBufferSize,
			PublishTimeout:             PublishTimeout.String(),
			AuthWebhookMaxRetries:      server.DefaultAuthWebhookMaxRetries,
			AuthWebhookMaxWaitInterval: AuthWebhookMaxWaitInterval.String(),
			AuthWebhookRequestTimeout:  AuthWebhookRequestTimeout.String(),
			AuthWebhookCacheSize:       AuthWebhookSize,
			AuthWebhookCacheTTL:        AuthWebhookCacheTTL.String(),
		},
	}
}

// TestMongoConfig returns the MongoDB config of the test database.
func TestMongoConfig() *mongo.Config {
	return &mongo.Config{
		ConnectionURI:     MongoConnectionURI,
		ConnectionTimeout: MongoConnectionTimeout,
		PingTimeout:       MongoPingTimeout,
		Database:          TestDBName(),
	}
}

// TestServer returns a new instance of coedit for testing.
func TestServer() *server.Coedit {
	c, err := server.New(TestConfig())
	if err != nil {
		log.Fatal(err)
	}
	return c
}

// TestDocID returns a new document id for testing.
func TestDocID(t testing.TB) string {
	name := strings.ToLower(t.Name())
	replacer := strings.NewReplacer("/", "-", " ", "-", "_", "-", "#", "-")
	return fmt.Sprintf("%s-%d", replacer.Replace(name), gotime.Now().UnixMilli())
}

// ReceiveEvent returns the next event of the client, failing the test if
// none arrives in time.
func ReceiveEvent(t testing.TB, cli *client.Client) events.DocEvent {
	t.Helper()

	select {
	case event, ok := <-cli.Events():
		require.True(t, ok, "connection closed")
		return event
	case <-gotime.After(EventTimeout):
		require.FailNow(t, "timeout waiting for an event")
	}
	return events.DocEvent{}
}

// ReceiveEventOf skips events until one of the given type arrives.
func ReceiveEventOf(t testing.TB, cli *client.Client, eventType events.DocEventType) events.DocEvent {
	t.Helper()

	for {
		event := ReceiveEvent(t, cli)
		if event.Type == eventType {
			return event
		}
	}
}

// AssertNoEvent asserts the client receives nothing for the given duration.
func AssertNoEvent(t testing.TB, cli *client.Client, wait gotime.Duration) {
	t.Helper()

	select {
	case event, ok := <-cli.Events():
		if ok {
			assert.Fail(t, "unexpected event", "%s", event.Type)
		}
	case <-gotime.After(wait):
	}
}

// WaitForServerToStart waits for the server to start.
func WaitForServerToStart(addr string) error {
	maxRetries := 10
	initialDelay := 100 * gotime.Millisecond
	maxDelay := 5 * gotime.Second

	for attempt := range maxRetries {
		delay := initialDelay * gotime.Duration(1<<uint(attempt))
		delay = min(delay, maxDelay)

		conn, err := net.DialTimeout("tcp", addr, 1*gotime.Second)
		if err != nil {
			gotime.Sleep(delay)
			continue
		}

		if err := conn.Close(); err != nil {
			return fmt.Errorf("close connection: %w", err)
		}

		return nil
	}

	return fmt.Errorf("timeout for server to start: %s", addr)
}

// CleanUpTestDatabase drops the test database.
func CleanUpTestDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*gotime.Second)
	defer cancel()

	cli, err := gomongo.Connect(options.Client().ApplyURI(MongoConnectionURI))
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer func() { _ = cli.Disconnect(context.Background()) }()

	if err := cli.Database(TestDBName()).Drop(ctx); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}
