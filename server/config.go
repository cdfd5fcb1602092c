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

package server

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yorkie-team/coedit/server/backend"
	"github.com/yorkie-team/coedit/server/backend/database/mongo"
	"github.com/yorkie-team/coedit/server/backend/housekeeping"
	"github.com/yorkie-team/coedit/server/backend/messagebroker"
	"github.com/yorkie-team/coedit/server/profiling"
	"github.com/yorkie-team/coedit/server/rpc"
)

// Below are the values of the default values of coedit config.
const (
	DefaultRPCPort            = 8080
	DefaultRPCMaxRequestBytes = 1 << 20
	DefaultRPCPingInterval    = 30 * time.Second
	DefaultRPCWriteTimeout    = 10 * time.Second

	DefaultProfilingPort = 8081

	DefaultHousekeepingInterval       = 30 * time.Second
	DefaultCollaboratorStaleThreshold = 5 * time.Minute

	DefaultSnapshotInterval       = 30 * time.Second
	DefaultSubscriptionBufferSize = 256
	DefaultPublishTimeout         = 100 * time.Millisecond

	DefaultMongoConnectionURI                = "mongodb://localhost:27017"
	DefaultMongoConnectionTimeout            = 5 * time.Second
	DefaultMongoPingTimeout                  = 5 * time.Second
	DefaultMongoDatabase                     = "coedit"
	DefaultMongoMonitoringSlowQueryThreshold = 100 * time.Millisecond

	DefaultKafkaTopic        = "document-events"
	DefaultKafkaWriteTimeout = 5 * time.Second

	DefaultAuthWebhookRequestTimeout  = 3 * time.Second
	DefaultAuthWebhookMaxRetries      = 10
	DefaultAuthWebhookMaxWaitInterval = 3 * time.Second
	DefaultAuthWebhookCacheSize       = 5000
	DefaultAuthWebhookCacheTTL        = 10 * time.Second
)

// Config is the configuration for creating a coedit instance.
type Config struct {
	RPC          *rpc.Config           `yaml:"RPC"`
	Profiling    *profiling.Config     `yaml:"Profiling"`
	Housekeeping *housekeeping.Config  `yaml:"Housekeeping"`
	Backend      *backend.Config       `yaml:"Backend"`
	Mongo        *mongo.Config         `yaml:"Mongo"`
	Kafka        *messagebroker.Config `yaml:"Kafka"`
}

// NewConfig returns a Config struct that contains reasonable defaults
// for most of the configurations.
func NewConfig() *Config {
	return newConfig(DefaultRPCPort, DefaultProfilingPort)
}

// NewConfigFromFile returns a Config struct for the given conf file.
func NewConfigFromFile(path string) (*Config, error) {
	conf := &Config{}
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err = yaml.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w", err)
	}

	conf.ensureDefaultValue()
	return conf, nil
}

// RPCAddr returns the RPC address.
func (c *Config) RPCAddr() string {
	return fmt.Sprintf("localhost:%d", c.RPC.Port)
}

// Validate returns an error if the provided Config is invalidated.
func (c *Config) Validate() error {
	if err := c.RPC.Validate(); err != nil {
		return err
	}

	if err := c.Profiling.Validate(); err != nil {
		return err
	}

	if err := c.Housekeeping.Validate(); err != nil {
		return err
	}

	if err := c.Backend.Validate(); err != nil {
		return err
	}

	if c.Mongo != nil {
		if err := c.Mongo.Validate(); err != nil {
			return err
		}
	}

	if c.Kafka != nil {
		if err := c.Kafka.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ensureDefaultValue sets the value of the option to which the default value
// should be applied when the user does not input it.
func (c *Config) ensureDefaultValue() {
	if c.RPC == nil {
		c.RPC = &rpc.Config{}
	}
	if c.RPC.Port == 0 {
		c.RPC.Port = DefaultRPCPort
	}
	if c.RPC.MaxRequestBytes == 0 {
		c.RPC.MaxRequestBytes = DefaultRPCMaxRequestBytes
	}
	if c.RPC.PingInterval == "" {
		c.RPC.PingInterval = DefaultRPCPingInterval.String()
	}
	if c.RPC.WriteTimeout == "" {
		c.RPC.WriteTimeout = DefaultRPCWriteTimeout.String()
	}

	if c.Profiling == nil {
		c.Profiling = &profiling.Config{}
	}
	if c.Profiling.Port == 0 {
		c.Profiling.Port = DefaultProfilingPort
	}

	if c.Housekeeping == nil {
		c.Housekeeping = &housekeeping.Config{}
	}
	if c.Housekeeping.Interval == "" {
		c.Housekeeping.Interval = DefaultHousekeepingInterval.String()
	}
	if c.Housekeeping.CollaboratorStaleThreshold == "" {
		c.Housekeeping.CollaboratorStaleThreshold = DefaultCollaboratorStaleThreshold.String()
	}

	if c.Backend == nil {
		c.Backend = &backend.Config{}
	}
	if c.Backend.SnapshotInterval == "" {
		c.Backend.SnapshotInterval = DefaultSnapshotInterval.String()
	}
	if c.Backend.SubscriptionBufferSize == 0 {
		c.Backend.SubscriptionBufferSize = DefaultSubscriptionBufferSize
	}
	if c.Backend.PublishTimeout == "" {
		c.Backend.PublishTimeout = DefaultPublishTimeout.String()
	}
	if c.Backend.AuthWebhookCacheSize == 0 {
		c.Backend.AuthWebhookCacheSize = DefaultAuthWebhookCacheSize
	}
	if c.Backend.AuthWebhookMaxRetries == 0 {
		c.Backend.AuthWebhookMaxRetries = DefaultAuthWebhookMaxRetries
	}
	if c.Backend.AuthWebhookMaxWaitInterval == "" {
		c.Backend.AuthWebhookMaxWaitInterval = DefaultAuthWebhookMaxWaitInterval.String()
	}
	if c.Backend.AuthWebhookRequestTimeout == "" {
		c.Backend.AuthWebhookRequestTimeout = DefaultAuthWebhookRequestTimeout.String()
	}
	if c.Backend.AuthWebhookCacheTTL == "" {
		c.Backend.AuthWebhookCacheTTL = DefaultAuthWebhookCacheTTL.String()
	}

	if c.Mongo != nil {
		if c.Mongo.ConnectionURI == "" {
			c.Mongo.ConnectionURI = DefaultMongoConnectionURI
		}

		if c.Mongo.ConnectionTimeout == "" {
			c.Mongo.ConnectionTimeout = DefaultMongoConnectionTimeout.String()
		}

		if c.Mongo.Database == "" {
			c.Mongo.Database = DefaultMongoDatabase
		}

		if c.Mongo.PingTimeout == "" {
			c.Mongo.PingTimeout = DefaultMongoPingTimeout.String()
		}

		if c.Mongo.MonitoringEnabled {
			if c.Mongo.MonitoringSlowQueryThreshold == "" {
				c.Mongo.MonitoringSlowQueryThreshold = DefaultMongoMonitoringSlowQueryThreshold.String()
			}
		}
	}
	if c.Kafka != nil && c.Kafka.Addresses != "" {
		if c.Kafka.Topic == "" {
			c.Kafka.Topic = DefaultKafkaTopic
		}
		if c.Kafka.WriteTimeout == "" {
			c.Kafka.WriteTimeout = DefaultKafkaWriteTimeout.String()
		}
	}
}

func newConfig(port int, profilingPort int) *Config {
	return &Config{
		RPC: &rpc.Config{
			Port:            port,
			MaxRequestBytes: DefaultRPCMaxRequestBytes,
			PingInterval:    DefaultRPCPingInterval.String(),
			WriteTimeout:    DefaultRPCWriteTimeout.String(),
		},
		Profiling: &profiling.Config{
			Port: profilingPort,
		},
		Housekeeping: &housekeeping.Config{
			Interval:                   DefaultHousekeepingInterval.String(),
			CollaboratorStaleThreshold: DefaultCollaboratorStaleThreshold.String(),
		},
		Backend: &backend.Config{
			SnapshotInterval:           DefaultSnapshotInterval.String(),
			SubscriptionBufferSize:     DefaultSubscriptionBufferSize,
			PublishTimeout:             DefaultPublishTimeout.String(),
			AuthWebhookMaxRetries:      DefaultAuthWebhookMaxRetries,
			AuthWebhookMaxWaitInterval: DefaultAuthWebhookMaxWaitInterval.String(),
			AuthWebhookRequestTimeout:  DefaultAuthWebhookRequestTimeout.String(),
			AuthWebhookCacheSize:       DefaultAuthWebhookCacheSize,
			AuthWebhookCacheTTL:        DefaultAuthWebhookCacheTTL.String(),
		},
	}
}
