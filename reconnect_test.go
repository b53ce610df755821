package main

import (
	"strings"
	"testing"
)

func TestReconnectionJWTRoundTrip(t *testing.T) {
	tokens := NewReconnectJWT("secret")
	key, err := tokens.GenerateReconnectionJWT("alice", 3)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	nickname, room, ok := tokens.ParseReconnectionJWT(key)
	if !ok {
		t.Fatal("valid key rejected")
	}
	if nickname != "alice" || room != 3 {
		t.Errorf("expected alice/3, got %v/%v", nickname, room)
	}
}

func TestReconnectionJWTWrongSecret(t *testing.T) {
	key, _ := NewReconnectJWT("secret").GenerateReconnectionJWT("alice", 1)
	if _, _, ok := NewReconnectJWT("other").ParseReconnectionJWT(key); ok {
		t.Error("key signed with another secret was accepted")
	}
}

func TestReconnectionJWTGarbage(t *testing.T) {
	tokens := NewReconnectJWT("secret")
	if _, _, ok := tokens.ParseReconnectionJWT("not-a-token"); ok {
		t.Error("garbage was accepted")
	}
}

func TestReconnectRestoresRoom(t *testing.T) {
	registry := NewRegistry()
	tokens := NewReconnectJWT("secret")

	alice := startClient(t, registry, tokens)
	alice.handshake(t, "alice")
	alice.expectKey(t)
	alice.send(t, "/create")
	alice.expect(t, "Created room 1.")
	alice.expect(t, "* alice joined the room")
	key := alice.expectKey(t)

	bob := startClient(t, registry, tokens)
	bob.handshake(t, "bob")
	bob.expectKey(t)
	bob.send(t, "/join 1")
	bob.expect(t, "* bob joined the room")
	bob.expectKey(t)
	alice.expect(t, "* bob joined the room")

	alice.conn.Close()
	waitUnregistered(t, registry, "alice")

	revived := startClient(t, registry, tokens)
	revived.send(t, "/reconnect "+key)
	revived.expectHelp(t)
	revived.expect(t, "* alice joined the room")
	revived.expectKey(t)
	bob.expect(t, "* alice joined the room")

	revived.send(t, "hello again")
	revived.expect(t, "alice: hello again")
	bob.expect(t, "alice: hello again")
}

func TestReconnectDeadRoomFallsBackToLobby(t *testing.T) {
	registry := NewRegistry()
	tokens := NewReconnectJWT("secret")

	alice := startClient(t, registry, tokens)
	alice.handshake(t, "alice")
	alice.expectKey(t)
	alice.send(t, "/create")
	alice.expect(t, "Created room 1.")
	alice.expect(t, "* alice joined the room")
	key := alice.expectKey(t)

	alice.conn.Close()
	waitUnregistered(t, registry, "alice")

	revived := startClient(t, registry, tokens)
	revived.send(t, "/reconnect "+key)
	revived.expectHelp(t)
	revived.expectKey(t)
	// room 1 died with its last occupant, so the revived session is in the lobby
	revived.send(t, "hi")
	revived.expect(t, msgJoinFirst)
}

func TestReconnectInvalidKeyReprompts(t *testing.T) {
	registry := NewRegistry()
	tokens := NewReconnectJWT("secret")

	c := startClient(t, registry, tokens)
	c.send(t, "/reconnect garbage")
	c.expect(t, msgReconnectRejected)
	c.send(t, "alice")
	c.expectHelp(t)
	c.expectKey(t)
}

func (c *chatClient) expectKey(t *testing.T) string {
	t.Helper()
	line := c.next(t)
	key, found := strings.CutPrefix(line, "Reconnect key: ")
	if !found {
		t.Fatalf("expected a reconnect key line, got %q", line)
	}
	return key
}
