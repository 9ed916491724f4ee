package assistant

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/amoylab/watson/internal/core/rest"
	"github.com/amoylab/watson/internal/testutil"
	sdkerrors "github.com/amoylab/watson/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := New(Options{Options: rest.Options{URL: url}, Version: "2018-07-10"})
	require.NoError(t, err)
	return c
}

func TestNew_DefaultVersion(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, "2018-07-10", c.Version())
}

func TestMessage(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodPost, "/v1/workspaces/:id/message", http.StatusOK, `{
		"input":{"text":"turn on the lights"},
		"intents":[{"intent":"turn_on","confidence":0.97}],
		"entities":[{"entity":"appliance","location":[12,18],"value":"lights"}],
		"context":{"conversation_id":"conv-1"},
		"output":{"text":["Turning on the lights"]}}`)
	c := newTestClient(t, srv.URL)

	res, err := c.Message(context.Background(), "ws-1", &MessageRequest{
		Input:   &MessageInput{Text: "turn on the lights"},
		Context: map[string]any{"conversation_id": "conv-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "turn_on", res.Intents[0].Intent)
	assert.Equal(t, []int64{12, 18}, res.Entities[0].Location)
	assert.Equal(t, "conv-1", res.Context["conversation_id"])
	assert.Equal(t, []string{"Turning on the lights"}, res.Output.Text)

	req := srv.LastRequest()
	assert.Equal(t, "/v1/workspaces/ws-1/message", req.Path)
	assert.Equal(t, "2018-07-10", req.Query.Get("version"))
	assert.JSONEq(t, `{"input":{"text":"turn on the lights"},"context":{"conversation_id":"conv-1"}}`, string(req.Body))
}

func TestWorkspaces(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodGet, "/v1/workspaces", http.StatusOK, `{"workspaces":[{"workspace_id":"ws-1","name":"Car"}],"pagination":{"refresh_url":"/v1/workspaces"}}`)
	srv.JSON(http.MethodGet, "/v1/workspaces/:id", http.StatusOK, `{"workspace_id":"ws-1","intents":[{"intent":"hello"}]}`)
	srv.JSON(http.MethodPost, "/v1/workspaces", http.StatusCreated, `{"workspace_id":"ws-2","name":"New"}`)
	srv.Handle(http.MethodDelete, "/v1/workspaces/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	list, err := c.ListWorkspaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Car", list.Workspaces[0].Name)

	ws, err := c.GetWorkspace(ctx, "ws-1", true)
	require.NoError(t, err)
	assert.Equal(t, "hello", ws.Intents[0].Intent)
	assert.Equal(t, "true", srv.LastRequest().Query.Get("export"))

	created, err := c.CreateWorkspace(ctx, &Workspace{Name: "New", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "ws-2", created.WorkspaceID)

	require.NoError(t, c.DeleteWorkspace(ctx, "ws-2"))
	assert.Equal(t, "/v1/workspaces/ws-2", srv.LastRequest().Path)
}

func TestIntentsAndEntities(t *testing.T) {
	srv := testutil.NewStubServer(t)
	srv.JSON(http.MethodGet, "/v1/workspaces/:id/intents", http.StatusOK, `{"intents":[{"intent":"hello"}]}`)
	srv.JSON(http.MethodPost, "/v1/workspaces/:id/intents", http.StatusCreated, `{"intent":"bye"}`)
	srv.Handle(http.MethodDelete, "/v1/workspaces/:id/intents/:intent", func(c *gin.Context) { c.Status(http.StatusOK) })
	srv.JSON(http.MethodGet, "/v1/workspaces/:id/entities", http.StatusOK, `{"entities":[{"entity":"appliance"}]}`)
	srv.JSON(http.MethodPost, "/v1/workspaces/:id/entities", http.StatusCreated, `{"entity":"room"}`)
	srv.Handle(http.MethodDelete, "/v1/workspaces/:id/entities/:entity", func(c *gin.Context) { c.Status(http.StatusOK) })
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	intents, err := c.ListIntents(ctx, "ws-1")
	require.NoError(t, err)
	assert.Len(t, intents.Intents, 1)

	intent, err := c.CreateIntent(ctx, "ws-1", &Intent{Intent: "bye", Examples: []Example{{Text: "see you"}}})
	require.NoError(t, err)
	assert.Equal(t, "bye", intent.Intent)
	require.NoError(t, c.DeleteIntent(ctx, "ws-1", "bye"))
	assert.Equal(t, "/v1/workspaces/ws-1/intents/bye", srv.LastRequest().Path)

	entities, err := c.ListEntities(ctx, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "appliance", entities.Entities[0].Entity)

	entity, err := c.CreateEntity(ctx, "ws-1", &Entity{Entity: "room", Values: []EntityValue{{Value: "kitchen"}}})
	require.NoError(t, err)
	assert.Equal(t, "room", entity.Entity)
	require.NoError(t, c.DeleteEntity(ctx, "ws-1", "room"))
	assert.Equal(t, "2018-07-10", srv.LastRequest().Query.Get("version"))
}

func TestPreconditions_NoNetworkCall(t *testing.T) {
	srv := testutil.NewStubServer(t)
	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	_, e1 := c.Message(ctx, "", nil)
	_, e2 := c.GetWorkspace(ctx, "", false)
	_, e3 := c.ListIntents(ctx, "")
	_, e4 := c.CreateIntent(ctx, "ws-1", &Intent{})
	_, e5 := c.CreateEntity(ctx, "ws-1", nil)
	_, e6 := c.ListEntities(ctx, "")
	for i, err := range []error{
		e1, e2, e3, e4, e5, e6,
		c.DeleteWorkspace(ctx, ""),
		c.DeleteIntent(ctx, "ws-1", ""),
		c.DeleteEntity(ctx, "", "room"),
	} {
		var nullErr *sdkerrors.ArgumentNullError
		assert.True(t, errors.As(err, &nullErr), "call %d", i)
	}
	assert.Zero(t, srv.RequestCount())
}
