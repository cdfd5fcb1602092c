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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yorkie-team/coedit/server"
	"github.com/yorkie-team/coedit/server/backend/database/mongo"
	"github.com/yorkie-team/coedit/server/backend/messagebroker"
	"github.com/yorkie-team/coedit/server/logging"
)

var (
	gracefulTimeout = 10 * time.Second
)

var (
	flagConfPath string
	flagLogLevel string

	rpcPingInterval  time.Duration
	rpcWriteTimeout  time.Duration
	housekeepingInt  time.Duration
	staleThreshold   time.Duration
	snapshotInterval time.Duration
	publishTimeout   time.Duration

	mongoConnectionURI     string
	mongoConnectionTimeout time.Duration
	mongoDatabase          string
	mongoPingTimeout       time.Duration

	kafkaAddresses    string
	kafkaTopic        string
	kafkaWriteTimeout time.Duration

	authWebhookMaxWaitInterval time.Duration
	authWebhookRequestTimeout  time.Duration
	authWebhookCacheTTL        time.Duration

	conf = server.NewConfig()
)

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server [options]",
		Short: "Start coedit server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf.RPC.PingInterval = rpcPingInterval.String()
			conf.RPC.WriteTimeout = rpcWriteTimeout.String()

			conf.Housekeeping.Interval = housekeepingInt.String()
			conf.Housekeeping.CollaboratorStaleThreshold = staleThreshold.String()

			conf.Backend.SnapshotInterval = snapshotInterval.String()
			conf.Backend.PublishTimeout = publishTimeout.String()
			conf.Backend.AuthWebhookMaxWaitInterval = authWebhookMaxWaitInterval.String()
			conf.Backend.AuthWebhookRequestTimeout = authWebhookRequestTimeout.String()
			conf.Backend.AuthWebhookCacheTTL = authWebhookCacheTTL.String()

			if mongoConnectionURI != "" {
				conf.Mongo = &mongo.Config{
					ConnectionURI:     mongoConnectionURI,
					ConnectionTimeout: mongoConnectionTimeout.String(),
					Database:          mongoDatabase,
					PingTimeout:       mongoPingTimeout.String(),
				}
			}

			if kafkaAddresses != "" {
				conf.Kafka = &messagebroker.Config{
					Addresses:    kafkaAddresses,
					Topic:        kafkaTopic,
					WriteTimeout: kafkaWriteTimeout.String(),
				}
			}

			// If config file is given, command-line arguments will be overwritten.
			if flagConfPath != "" {
				parsed, err := server.NewConfigFromFile(flagConfPath)
				if err != nil {
					return err
				}
				conf = parsed
			}

			if err := logging.SetLogLevel(flagLogLevel); err != nil {
				return err
			}

			c, err := server.New(conf)
			if err != nil {
				return err
			}

			if err := c.Start(); err != nil {
				return err
			}

			if code := handleSignal(c); code != 0 {
				return fmt.Errorf("exit code: %d", code)
			}

			return nil
		},
	}
}

func handleSignal(r *server.Coedit) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	var sig os.Signal
	select {
	case s := <-sigCh:
		sig = s
	case <-r.ShutdownCh():
		// coedit is already shutdown
		return 0
	}

	graceful := false
	if sig == syscall.SIGINT || sig == syscall.SIGTERM {
		graceful = true
	}

	logging.DefaultLogger().Infof("caught signal: %s", sig.String())

	gracefulCh := make(chan struct{})
	go func() {
		if err := r.Shutdown(graceful); err != nil {
			logging.DefaultLogger().Error(err)
			return
		}
		close(gracefulCh)
	}()

	select {
	case <-sigCh:
		return 1
	case <-time.After(gracefulTimeout):
		return 1
	case <-gracefulCh:
		return 0
	}
}

func init() {
	cmd := newServerCmd()
	cmd.Flags().StringVarP(
		&flagConfPath,
		"config",
		"c",
		"",
		"Config path",
	)
	cmd.Flags().StringVarP(
		&flagLogLevel,
		"log-level",
		"l",
		"info",
		"Log level: debug, info, warn, error, panic, fatal",
	)
	cmd.Flags().IntVar(
		&conf.RPC.Port,
		"rpc-port",
		server.DefaultRPCPort,
		"RPC port",
	)
	cmd.Flags().Int64Var(
		&conf.RPC.MaxRequestBytes,
		"rpc-max-request-bytes",
		server.DefaultRPCMaxRequestBytes,
		"Maximum client message size in bytes the server will accept.",
	)
	cmd.Flags().DurationVar(
		&rpcPingInterval,
		"rpc-ping-interval",
		server.DefaultRPCPingInterval,
		"Interval of the keep-alive pings.",
	)
	cmd.Flags().DurationVar(
		&rpcWriteTimeout,
		"rpc-write-timeout",
		server.DefaultRPCWriteTimeout,
		"Deadline of writing one message to a connection.",
	)
	cmd.Flags().BoolVar(
		&conf.Profiling.Enabled,
		"enable-profiling",
		false,
		"Enable the profiling server.",
	)
	cmd.Flags().IntVar(
		&conf.Profiling.Port,
		"profiling-port",
		server.DefaultProfilingPort,
		"Profiling port",
	)
	cmd.Flags().BoolVar(
		&conf.Profiling.EnablePprof,
		"enable-pprof",
		false,
		"Enable runtime profiling data via HTTP server.",
	)
	cmd.Flags().DurationVar(
		&housekeepingInt,
		"housekeeping-interval",
		server.DefaultHousekeepingInterval,
		"Interval between idle sweeps.",
	)
	cmd.Flags().DurationVar(
		&staleThreshold,
		"collaborator-stale-threshold",
		server.DefaultCollaboratorStaleThreshold,
		"Time after which a silent collaborator is evicted.",
	)
	cmd.Flags().BoolVar(
		&conf.Backend.SnapshotEnabled,
		"snapshot-enabled",
		false,
		"Save the documents to the snapshot database.",
	)
	cmd.Flags().DurationVar(
		&snapshotInterval,
		"snapshot-interval",
		server.DefaultSnapshotInterval,
		"Interval between checkpoints of the changed documents.",
	)
	cmd.Flags().IntVar(
		&conf.Backend.MaxCollaboratorsPerDocument,
		"max-collaborators-per-document",
		0,
		"Maximum collaborators of a document. 0 means unlimited.",
	)
	cmd.Flags().IntVar(
		&conf.Backend.SubscriptionBufferSize,
		"subscription-buffer-size",
		server.DefaultSubscriptionBufferSize,
		"Number of events buffered per connection.",
	)
	cmd.Flags().DurationVar(
		&publishTimeout,
		"publish-timeout",
		server.DefaultPublishTimeout,
		"Time an event waits for a full connection buffer before it is dropped.",
	)
	cmd.Flags().StringVar(
		&mongoConnectionURI,
		"mongo-connection-uri",
		"",
		"MongoDB's connection URI. The memory database is used when empty.",
	)
	cmd.Flags().DurationVar(
		&mongoConnectionTimeout,
		"mongo-connection-timeout",
		server.DefaultMongoConnectionTimeout,
		"Mongo DB's connection timeout",
	)
	cmd.Flags().StringVar(
		&mongoDatabase,
		"mongo-database",
		server.DefaultMongoDatabase,
		"Database name of the snapshots",
	)
	cmd.Flags().DurationVar(
		&mongoPingTimeout,
		"mongo-ping-timeout",
		server.DefaultMongoPingTimeout,
		"Mongo DB's ping timeout",
	)
	cmd.Flags().StringVar(
		&kafkaAddresses,
		"kafka-addresses",
		"",
		"Comma-separated list of Kafka addresses. Document events are not produced when empty.",
	)
	cmd.Flags().StringVar(
		&kafkaTopic,
		"kafka-topic",
		server.DefaultKafkaTopic,
		"Kafka topic name of the document events",
	)
	cmd.Flags().DurationVar(
		&kafkaWriteTimeout,
		"kafka-write-timeout",
		server.DefaultKafkaWriteTimeout,
		"Timeout for writing messages to Kafka",
	)
	cmd.Flags().StringVar(
		&conf.Backend.AuthWebhookURL,
		"auth-webhook-url",
		"",
		"URL of the webhook resolving the identity behind a token.",
	)
	cmd.Flags().Uint64Var(
		&conf.Backend.AuthWebhookMaxRetries,
		"auth-webhook-max-retries",
		server.DefaultAuthWebhookMaxRetries,
		"Maximum number of retries for an authorization webhook.",
	)
	cmd.Flags().DurationVar(
		&authWebhookMaxWaitInterval,
		"auth-webhook-max-wait-interval",
		server.DefaultAuthWebhookMaxWaitInterval,
		"Maximum wait interval for authorization webhook.",
	)
	cmd.Flags().DurationVar(
		&authWebhookRequestTimeout,
		"auth-webhook-request-timeout",
		server.DefaultAuthWebhookRequestTimeout,
		"Timeout of one authorization webhook request.",
	)
	cmd.Flags().IntVar(
		&conf.Backend.AuthWebhookCacheSize,
		"auth-webhook-cache-size",
		server.DefaultAuthWebhookCacheSize,
		"The cache size of the authorization webhook.",
	)
	cmd.Flags().DurationVar(
		&authWebhookCacheTTL,
		"auth-webhook-cache-ttl",
		server.DefaultAuthWebhookCacheTTL,
		"TTL value to set when caching authorized webhook response.",
	)
	cmd.Flags().StringVar(
		&conf.Backend.AuthJWTSecret,
		"auth-jwt-secret",
		"",
		"HS256 secret of the identity tokens, used when no auth webhook is set.",
	)

	rootCmd.AddCommand(cmd)
}
