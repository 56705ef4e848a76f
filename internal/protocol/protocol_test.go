package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	frame, err := Encode(EventLobbyError, LobbyError{Message: "Lobby is full"})
	require.NoError(t, err)

	msg, err := Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, EventLobbyError, msg.Event)

	var payload LobbyError
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, "Lobby is full", payload.Message)
}

func TestEncode_NilPayload(t *testing.T) {
	frame, err := Encode(EventListLobbies, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"list-lobbies"}`, string(frame))
}

func TestDecode_CreateLobbyNamePayload(t *testing.T) {
	// create-lobby carries a bare JSON string as its payload.
	msg, err := Decode([]byte(`{"event":"create-lobby","data":"Alice"}`))
	require.NoError(t, err)

	var name string
	require.NoError(t, json.Unmarshal(msg.Data, &name))
	assert.Equal(t, "Alice", name)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"data":{}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing event name")
}
