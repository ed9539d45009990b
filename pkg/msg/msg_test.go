package msg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetMessage(t *testing.T) {
	tests := []struct {
		name string
		key  string
		args []interface{}
		want string
	}{
		{name: "plain", key: "todo.error.not-found", want: "Todo not found"},
		{name: "string arg", key: "attachment.error.type-not-allowed", args: []interface{}{"application/x-msdownload"}, want: "File type application/x-msdownload is not allowed"},
		{name: "numeric args", key: "attachment.error.too-large", args: []interface{}{int64(15), 10}, want: "File size 15 exceeds the limit of 10 bytes"},
		{name: "duration arg", key: "user.error.rate-limited", args: []interface{}{time.Minute}, want: "Too many requests, try again in 1m0s"},
		{name: "missing key", key: "does.not.exist", want: "Message not found: does.not.exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetMessage(tt.key, tt.args...))
		})
	}
}
