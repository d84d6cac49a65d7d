package app

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/collabpad/collab-notepad-service/global"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWebSocketMessage(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantAction string
		wantData   string
		wantOK     bool
	}{
		{
			name:       "action with json payload",
			raw:        `join-room|{"roomId":"r1","username":"alice"}`,
			wantAction: "join-room",
			wantData:   `{"roomId":"r1","username":"alice"}`,
			wantOK:     true,
		},
		{
			name:       "empty payload",
			raw:        "close|",
			wantAction: "close",
			wantData:   "",
			wantOK:     true,
		},
		{
			// 仅在第一个分隔符处拆分，负载内的 "|" 保留
			name:       "separator inside payload",
			raw:        `update-note|{"content":"a|b"}`,
			wantAction: "update-note",
			wantData:   `{"content":"a|b"}`,
			wantOK:     true,
		},
		{
			name:   "missing separator",
			raw:    "join-room",
			wantOK: false,
		},
		{
			name:   "empty frame",
			raw:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := ParseWebSocketMessage(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, msg)
				return
			}
			assert.Equal(t, tt.wantAction, msg.Action)
			assert.Equal(t, tt.wantData, string(msg.Data))
		})
	}
}

func TestEncodeFrame(t *testing.T) {
	res := Res{
		Code:   0,
		Status: true,
		Data:   "note-1",
	}

	frame := string(encodeFrame("note-deleted", res))
	require.True(t, strings.HasPrefix(frame, "note-deleted|"))

	var decoded Res
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(frame, "note-deleted|")), &decoded))
	assert.Equal(t, 0, decoded.Code)
	assert.True(t, decoded.Status)
	assert.Equal(t, "note-1", decoded.Data)

	// 无 action 时直接返回 JSON
	bare := string(encodeFrame("", res))
	require.False(t, strings.Contains(bare, "|"))
	require.NoError(t, json.Unmarshal([]byte(bare), &decoded))
}

func TestClientBindAndValid(t *testing.T) {
	require.NoError(t, global.SetupValidator())

	type joinPayload struct {
		RoomID   string `json:"roomId" binding:"required"`
		Username string `json:"username" binding:"required"`
	}

	// 未携带翻译器的连接也要能返回校验错误，不允许 panic
	client := &WebsocketClient{}

	var p joinPayload
	valid, errs := client.BindAndValid([]byte(`{"roomId":"r1"}`), &p)
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.Equal(t, "username", errs[0].Key)
	assert.NotEmpty(t, errs[0].Message)

	valid, errs = client.BindAndValid([]byte(`{"roomId":"r1","username":"alice"}`), &p)
	assert.True(t, valid)
	assert.Nil(t, errs)

	valid, errs = client.BindAndValid([]byte("not json"), &p)
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Key)
}

func TestClientBindAndValidTranslates(t *testing.T) {
	require.NoError(t, global.SetupValidator())

	trans, ok := global.Validator.Uni.GetTranslator("en")
	require.True(t, ok)

	// 升级时快照的翻译器用于本条连接的所有校验错误
	client := &WebsocketClient{trans: trans}

	var p struct {
		Username string `json:"username" binding:"required"`
	}
	valid, errs := client.BindAndValid([]byte(`{}`), &p)
	assert.False(t, valid)
	require.Len(t, errs, 1)
	assert.Equal(t, "username is a required field", errs[0].Message)
}
