package protocol

import (
	"testing"

	"github.com/zhubert/huddle/internal/errors"
)

func TestEncode_WireShape(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
		want string
	}{
		{
			name: "register",
			env:  NewRegister("alice"),
			want: `{"messageType":"register","dataArray":null,"data":"alice"}`,
		},
		{
			name: "message",
			env:  NewMessage("hello there"),
			want: `{"messageType":"message","dataArray":null,"data":"hello there"}`,
		},
		{
			name: "html is not escaped",
			env:  NewMessage("a <b> & c"),
			want: `{"messageType":"message","dataArray":null,"data":"a <b> & c"}`,
		},
		{
			name: "users",
			env:  NewUsers([]string{"alice", "bob"}),
			want: `{"messageType":"users","dataArray":["alice","bob"],"data":null}`,
		},
		{
			name: "empty roster is an empty array",
			env:  NewUsers(nil),
			want: `{"messageType":"users","dataArray":[],"data":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.env)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantType MsgType
		wantData string
		wantLen  int
		wantKind errors.Kind
	}{
		{
			name:     "roster",
			raw:      `{"messageType":"users","dataArray":["a","b","c"]}`,
			wantType: MsgUsers,
			wantLen:  3,
		},
		{
			name:     "message with null array",
			raw:      `{"messageType":"message","dataArray":null,"data":"{}"}`,
			wantType: MsgMessage,
			wantData: "{}",
		},
		{
			name:     "unknown tag decodes",
			raw:      `{"messageType":"typing","data":"alice"}`,
			wantType: MsgType("typing"),
			wantData: "alice",
		},
		{
			name:     "not json",
			raw:      `users:alice`,
			wantKind: errors.KindProtocol,
		},
		{
			name:     "missing tag",
			raw:      `{"data":"x"}`,
			wantKind: errors.KindProtocol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := Decode(tt.raw)
			if tt.wantKind != errors.KindUnknown {
				if err == nil {
					t.Fatalf("Decode() expected error")
				}
				if got := errors.GetKind(err); got != tt.wantKind {
					t.Errorf("error kind = %v, want %v", got, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if env.MessageType != tt.wantType {
				t.Errorf("MessageType = %q, want %q", env.MessageType, tt.wantType)
			}
			if env.DataString() != tt.wantData {
				t.Errorf("DataString() = %q, want %q", env.DataString(), tt.wantData)
			}
			if len(env.DataArray) != tt.wantLen {
				t.Errorf("len(DataArray) = %d, want %d", len(env.DataArray), tt.wantLen)
			}
		})
	}
}

func TestMsgType_Known(t *testing.T) {
	for _, mt := range []MsgType{MsgUsers, MsgRegister, MsgMessage, MsgReaction} {
		if !mt.Known() {
			t.Errorf("%q should be known", mt)
		}
	}
	if MsgType("typing").Known() {
		t.Error("typing should not be known")
	}
}

func TestNewMessageFrame_PayloadIsNestedJSON(t *testing.T) {
	env, err := NewMessageFrame("bob", `say "hi"`)
	if err != nil {
		t.Fatalf("NewMessageFrame() error = %v", err)
	}
	if env.MessageType != MsgMessage {
		t.Fatalf("MessageType = %q, want message", env.MessageType)
	}

	data, err := DecodeMessageData(env.DataString())
	if err != nil {
		t.Fatalf("DecodeMessageData() error = %v", err)
	}
	if data.From != "bob" || data.Message != `say "hi"` {
		t.Errorf("payload = %+v", data)
	}
	if data.Reactions != nil {
		t.Errorf("Reactions = %v, want nil", data.Reactions)
	}
}

func TestDecodeMessageData_Reactions(t *testing.T) {
	data, err := DecodeMessageData(`{"from":"a","message":"m","reactions":["👍"]}`)
	if err != nil {
		t.Fatalf("DecodeMessageData() error = %v", err)
	}
	if len(data.Reactions) != 1 || data.Reactions[0] != "👍" {
		t.Errorf("Reactions = %v", data.Reactions)
	}

	if _, err := DecodeMessageData(`not json`); !errors.Is(err, errors.KindProtocol) {
		t.Errorf("expected protocol error, got %v", err)
	}
}
