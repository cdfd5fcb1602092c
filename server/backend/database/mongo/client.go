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

// Package mongo implements the database interface using MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/yorkie-team/coedit/server/backend/database"
	"github.com/yorkie-team/coedit/server/logging"
)

// Client is a client that connects to Mongo DB and reads or saves snapshots.
type Client struct {
	config *Config
	client *mongo.Client
}

// Dial creates an instance of Client and dials the given MongoDB.
func Dial(conf *Config) (*Client, error) {
	connectionTimeout, err := conf.ParseConnectionTimeout()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(conf.ConnectionURI)
	if conf.MonitoringEnabled {
		threshold, err := time.ParseDuration(conf.MonitoringSlowQueryThreshold)
		if err != nil {
			return nil, fmt.Errorf("parse slow query threshold: %w", err)
		}
		clientOptions.SetMonitor(NewQueryMonitor(threshold).CreateCommandMonitor())
	}

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	pingTimeout, err := conf.ParsePingTimeout()
	if err != nil {
		return nil, err
	}
	ctxPing, cancelPing := context.WithTimeout(ctx, pingTimeout)
	defer cancelPing()

	if err := client.Ping(ctxPing, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	if err := ensureIndexes(ctx, client.Database(conf.Database)); err != nil {
		return nil, err
	}

	logging.DefaultLogger().Infof("MongoDB connected, URI: %s, DB: %s", conf.ConnectionURI, conf.Database)

	return &Client{
		config: conf,
		client: client,
	}, nil
}

// Close all resources of this client.
func (c *Client) Close() error {
	if err := c.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("close mongo client: %w", err)
	}

	return nil
}

func (c *Client) collection(name string) *mongo.Collection {
	return c.client.Database(c.config.Database).Collection(name)
}

// FindSnapshotInfo returns the latest snapshot of the given document.
func (c *Client) FindSnapshotInfo(ctx context.Context, docID string) (*database.SnapshotInfo, error) {
	info := &database.SnapshotInfo{}
	result := c.collection(ColSnapshots).FindOne(ctx, bson.M{"doc_id": docID})
	if err := result.Decode(info); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", docID, database.ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("find snapshot of %s: %w", docID, err)
	}

	return info, nil
}

// UpdateSnapshotInfo stores the given snapshot. The filter only matches a
// stored snapshot with a version not newer than the given one; otherwise
// the upsert collides with the unique doc_id index.
func (c *Client) UpdateSnapshotInfo(ctx context.Context, info *database.SnapshotInfo) error {
	now := time.Now()
	result, err := c.collection(ColSnapshots).UpdateOne(ctx, bson.M{
		"doc_id":  info.DocID,
		"version": bson.M{"$lte": info.Version},
	}, bson.M{
		"$set": bson.M{
			"content":          info.Content,
			"version":          info.Version,
			"last_modified":    info.LastModified,
			"last_modified_by": info.LastModifiedBy,
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"_id": bson.NewObjectID().Hex(),
		},
	}, options.UpdateOne().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", info.DocID, database.ErrConflictOnUpdate)
		}
		return fmt.Errorf("update snapshot of %s: %w", info.DocID, err)
	}

	if id, ok := result.UpsertedID.(string); ok {
		info.ID = id
	}
	info.UpdatedAt = now
	return nil
}

// ListSnapshotInfos returns the snapshots of all documents without content.
func (c *Client) ListSnapshotInfos(ctx context.Context) ([]*database.SnapshotInfo, error) {
	cursor, err := c.collection(ColSnapshots).Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "doc_id", Value: 1}}).
		SetProjection(bson.M{"content": 0}),
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var infos []*database.SnapshotInfo
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("fetch snapshots: %w", err)
	}

	return infos, nil
}
