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

// Package backend provides the backend implementation of coedit. It owns
// the coordinator of the documents and the resources it runs on: rooms,
// background routines, periodic tasks, the snapshot database and the event
// broker.
package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/yorkie-team/coedit/api/types"
	pkgwebhook "github.com/yorkie-team/coedit/pkg/webhook"
	"github.com/yorkie-team/coedit/server/backend/background"
	"github.com/yorkie-team/coedit/server/backend/collab"
	"github.com/yorkie-team/coedit/server/backend/database"
	memdb "github.com/yorkie-team/coedit/server/backend/database/memory"
	"github.com/yorkie-team/coedit/server/backend/database/mongo"
	"github.com/yorkie-team/coedit/server/backend/housekeeping"
	"github.com/yorkie-team/coedit/server/backend/messagebroker"
	"github.com/yorkie-team/coedit/server/backend/pubsub"
	"github.com/yorkie-team/coedit/server/logging"
	"github.com/yorkie-team/coedit/server/profiling/prometheus"
)

const (
	sweepIdleTask  = "sweep-idle"
	checkpointTask = "checkpoint"
)

// Backend manages coedit's backend such as the Coordinator and Database. It
// also provides the rooms of the documents.
type Backend struct {
	Config *Config

	// PubSub holds the rooms of the documents and the subscriptions of the
	// connections.
	PubSub *pubsub.PubSub
	// Coordinator applies the messages of the collaborators.
	Coordinator *collab.Coordinator

	// Background is used to manage background tasks.
	Background *background.Background
	// Housekeeping runs the idle sweep and the checkpoints.
	Housekeeping *housekeeping.Housekeeping

	// AuthWebhookClient is used to resolve identities. It is nil when no
	// auth webhook is configured.
	AuthWebhookClient *pkgwebhook.Client[types.AuthWebhookRequest, types.AuthWebhookResponse]

	// Metrics is used to expose metrics.
	Metrics *prometheus.Metrics
	// DB is the snapshot database. It is nil when snapshots are disabled.
	DB database.Database
	// MsgBroker is the message producer instance.
	MsgBroker messagebroker.Broker
}

// New creates a new instance of Backend.
func New(
	conf *Config,
	mongoConf *mongo.Config,
	housekeepingConf *housekeeping.Config,
	metrics *prometheus.Metrics,
	kafkaConf *messagebroker.Config,
) (*Backend, error) {
	// 01. Create the rooms and the background routine manager.
	publishTimeout, err := conf.ParsePublishTimeout()
	if err != nil {
		return nil, err
	}
	rooms := pubsub.New(pubsub.Options{
		BufferSize:     conf.SubscriptionBufferSize,
		PublishTimeout: publishTimeout,
	})
	bg := background.New(metrics)

	// 02. Create the auth webhook client if configured.
	authWebhookClient, err := newAuthWebhookClient(conf)
	if err != nil {
		return nil, err
	}

	// 03. Create the snapshot database if enabled. If the MongoDB
	// configuration is given, create a MongoDB instance. Otherwise, create a
	// memory database instance.
	var db database.Database
	dbInfo := "disabled"
	if conf.SnapshotEnabled {
		if mongoConf != nil {
			db, err = mongo.Dial(mongoConf)
			dbInfo = mongoConf.ConnectionURI
		} else {
			db, err = memdb.New()
			dbInfo = "memory"
		}
		if err != nil {
			return nil, err
		}
	}

	// 04. Create the message broker instance.
	broker := messagebroker.Ensure(kafkaConf)

	// 05. Create the coordinator.
	staleThreshold, err := housekeepingConf.ParseStaleThreshold()
	if err != nil {
		return nil, err
	}
	coordinator := collab.New(collab.Options{
		StaleThreshold:              staleThreshold,
		MaxCollaboratorsPerDocument: conf.MaxCollaboratorsPerDocument,
	}, rooms, db, broker, metrics)

	// 06. Create the housekeeping instance and register the periodic tasks.
	housekeeper, err := housekeeping.New(housekeepingConf)
	if err != nil {
		return nil, err
	}
	if err := housekeeper.RegisterTask(sweepIdleTask, 0, func(ctx context.Context) error {
		_, err := coordinator.SweepIdle(ctx)
		return err
	}); err != nil {
		return nil, err
	}
	if db != nil {
		snapshotInterval, err := conf.ParseSnapshotInterval()
		if err != nil {
			return nil, err
		}
		if err := housekeeper.RegisterTask(checkpointTask, snapshotInterval, func(ctx context.Context) error {
			_, err := coordinator.Checkpoint(ctx)
			return err
		}); err != nil {
			return nil, err
		}
	}

	logging.DefaultLogger().Infof("backend created: snapshot db: %s", dbInfo)

	return &Backend{
		Config: conf,

		PubSub:      rooms,
		Coordinator: coordinator,

		Background:   bg,
		Housekeeping: housekeeper,

		AuthWebhookClient: authWebhookClient,

		Metrics:   metrics,
		DB:        db,
		MsgBroker: broker,
	}, nil
}

func newAuthWebhookClient(
	conf *Config,
) (*pkgwebhook.Client[types.AuthWebhookRequest, types.AuthWebhookResponse], error) {
	if conf.AuthWebhookURL == "" {
		return nil, nil
	}

	timeout, err := conf.ParseAuthWebhookRequestTimeout()
	if err != nil {
		return nil, err
	}
	maxWaitInterval, err := conf.ParseAuthWebhookMaxWaitInterval()
	if err != nil {
		return nil, err
	}
	cacheTTL, err := conf.ParseAuthWebhookCacheTTL()
	if err != nil {
		return nil, err
	}

	client, err := pkgwebhook.NewClient[types.AuthWebhookRequest, types.AuthWebhookResponse](
		conf.AuthWebhookURL,
		conf.AuthWebhookCacheSize,
		cacheTTL,
		pkgwebhook.Options{
			Timeout:         timeout,
			MaxRetries:      conf.AuthWebhookMaxRetries,
			BaseWaitTime:    maxWaitInterval / 10,
			MaxWaitInterval: maxWaitInterval,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create auth webhook client: %w", err)
	}

	return client, nil
}

// Start starts the backend.
func (b *Backend) Start() error {
	if err := b.Housekeeping.Start(); err != nil {
		return err
	}

	logging.DefaultLogger().Infof("backend started")
	return nil
}

// Shutdown closes all resources of this instance. The changed documents
// are checkpointed one last time before the database is closed.
func (b *Backend) Shutdown() error {
	var errs []error

	if err := b.Housekeeping.Stop(); err != nil {
		errs = append(errs, err)
	}

	if saved, err := b.Coordinator.Checkpoint(context.Background()); err != nil {
		errs = append(errs, err)
	} else if saved > 0 {
		logging.DefaultLogger().Infof("backend checkpointed %d documents", saved)
	}

	b.PubSub.Close()
	b.Background.Close()

	if err := b.MsgBroker.Close(); err != nil {
		errs = append(errs, err)
	}
	if b.DB != nil {
		if err := b.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logging.DefaultLogger().Infof("backend stopped")
	return nil
}
