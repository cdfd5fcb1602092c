//go:build integration

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

package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/coedit/api/types"
	"github.com/yorkie-team/coedit/api/types/events"
	"github.com/yorkie-team/coedit/client"
	"github.com/yorkie-team/coedit/server"
	"github.com/yorkie-team/coedit/test/helper"
)

func TestSnapshot(t *testing.T) {
	t.Run("document survives server restart test", func(t *testing.T) {
		ctx := context.Background()
		docID := helper.TestDocID(t)
		conf := helper.TestConfig()
		conf.Mongo = helper.TestMongoConfig()
		defer func() { assert.NoError(t, helper.CleanUpTestDatabase()) }()

		svr, err := server.New(conf)
		require.NoError(t, err)
		require.NoError(t, svr.Start())
		require.NoError(t, helper.WaitForServerToStart(svr.RPCAddr()))

		cli, err := client.Dial(ctx, svr.RPCAddr())
		require.NoError(t, err)
		require.NoError(t, cli.JoinDocument(ctx, docID, types.User{ID: "alice", Name: "Alice"}))
		helper.ReceiveEventOf(t, cli, events.DocStateEvent)
		require.NoError(t, cli.ChangeContent(ctx, docID, "alice", types.Operation{
			Type:    types.Insert,
			Content: "persisted",
			Length:  9,
		}))
		helper.ReceiveEventOf(t, cli, events.ContentChangedEvent)

		// shutdown closes the connection and saves the last snapshot.
		require.NoError(t, svr.Shutdown(true))
		assert.NoError(t, cli.Close())

		svr, err = server.New(conf)
		require.NoError(t, err)
		require.NoError(t, svr.Start())
		require.NoError(t, helper.WaitForServerToStart(svr.RPCAddr()))
		defer func() { assert.NoError(t, svr.Shutdown(true)) }()

		cli, err = client.Dial(ctx, svr.RPCAddr())
		require.NoError(t, err)
		defer func() { assert.NoError(t, cli.Close()) }()
		require.NoError(t, cli.JoinDocument(ctx, docID, types.User{ID: "alice", Name: "Alice"}))
		state := helper.ReceiveEventOf(t, cli, events.DocStateEvent).Payload.(*events.DocStatePayload)
		assert.Equal(t, "persisted", state.Content)
		assert.Equal(t, int64(1), state.Version)
	})
}
