package main

import (
	"errors"
	"fmt"
	"strings"
)

const (
	msgNicknameTaken     = "That nickname is already in use. Enter another one."
	msgNicknameBlank     = "Nickname cannot be blank. Enter another one."
	msgHelp              = "List rooms: /list\nCreate a room: /create\nJoin a room: /join <room>\nLeave the room: /exit\nDisconnect: /bye"
	msgNoRooms           = "There are no rooms. Type /create to make one."
	msgInvalidRoom       = "Please enter a valid room number."
	msgJoinUsage         = "Usage: /join <room>"
	msgExitedRoom        = "You left the room."
	msgNotInRoom         = "You are not in a room."
	msgJoinFirst         = "Join a room first. Type /create or /join <room>."
	msgFarewell          = "Disconnecting. Goodbye."
	msgReconnectRejected = "Reconnect key rejected. Enter a nickname."
)

func joinNotice(nickname string) string {
	return fmt.Sprintf("* %s joined the room", nickname)
}

func leaveNotice(nickname string) string {
	return fmt.Sprintf("* %s left the room", nickname)
}

type client struct {
	registry *Registry
	reader   LineReader
	sink     Sink
	tokens   *ReconnectJWT
	nickname string
	room     int
	logger   ClientLogger
}

// HandleClient runs the whole lifetime of one connection: the nickname
// handshake, then the command loop, then cleanup. It returns when the peer
// disconnects or /bye is received; the caller owns closing the transport.
// Errors on this client's own stream never reach other clients.
func HandleClient(registry *Registry, reader LineReader, sink Sink, tokens *ReconnectJWT, addr, transport string) {
	c := &client{
		registry: registry,
		reader:   reader,
		sink:     sink,
		tokens:   tokens,
		logger:   GetClientLogger(addr, transport),
	}
	if !c.handshake() {
		return
	}
	defer func() {
		c.registry.Unregister(c.nickname)
		c.logger.Disconnected(c.nickname)
	}()
	c.loop()
}

// handshake reads lines until one is admitted as a nickname or the peer
// gives up. A "/reconnect <key>" line restores a recently dropped session
// instead.
func (c *client) handshake() bool {
	for {
		line, err := c.reader.ReadLine()
		if err != nil {
			return false
		}
		if key, isReconnect := strings.CutPrefix(line, "/reconnect "); isReconnect && c.tokens != nil {
			if c.resume(strings.TrimSpace(key)) {
				return true
			}
			c.sink.WriteLine(msgReconnectRejected)
			continue
		}
		err = c.registry.TryRegister(line, c.sink)
		switch {
		case errors.Is(err, ErrNicknameBlank):
			c.sink.WriteLine(msgNicknameBlank)
		case errors.Is(err, ErrNicknameTaken):
			c.sink.WriteLine(msgNicknameTaken)
		case err == nil:
			c.nickname = line
			c.logger.Registered(c.nickname)
			if c.sink.WriteLine(msgHelp) != nil {
				c.registry.Unregister(c.nickname)
				return false
			}
			c.sendReconnectKey()
			return true
		}
	}
}

// resume re-admits the nickname carried by a reconnect key and puts the
// client back into its old room when that room still exists.
func (c *client) resume(key string) bool {
	nickname, room, ok := c.tokens.ParseReconnectionJWT(key)
	if !ok {
		return false
	}
	if c.registry.TryRegister(nickname, c.sink) != nil {
		return false
	}
	c.nickname = nickname
	c.logger.Reconnected(nickname)
	if c.sink.WriteLine(msgHelp) != nil {
		c.registry.Unregister(c.nickname)
		return false
	}
	if room != 0 && roomExists(c.registry, room) {
		c.registry.SetRoom(c.nickname, room)
		c.room = room
		c.registry.Broadcast(room, joinNotice(c.nickname))
	}
	c.sendReconnectKey()
	return true
}

func (c *client) loop() {
	for {
		line, err := c.reader.ReadLine()
		if err != nil {
			return
		}
		command := ParseCommand(line)
		switch command.Kind {
		case CmdDisconnect:
			c.sink.WriteLine(msgFarewell)
			return
		case CmdListRooms:
			c.listRooms()
		case CmdCreateRoom:
			c.createRoom()
		case CmdJoinRoom:
			c.joinRoom(command.Room)
		case CmdExitRoom:
			c.exitRoom()
		case CmdChat:
			c.chat(command.Text)
		case CmdMalformed:
			c.sink.WriteLine(msgJoinUsage)
		case CmdUnknown:
			// silently ignored
		}
	}
}

func (c *client) listRooms() {
	rooms := c.registry.RoomsInUse()
	if len(rooms) == 0 {
		c.sink.WriteLine(msgNoRooms)
		return
	}
	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = fmt.Sprintf("%d", room)
	}
	c.sink.WriteLine("Rooms: " + strings.Join(ids, " "))
}

func (c *client) createRoom() {
	room := c.registry.NextRoomID()
	c.registry.SetRoom(c.nickname, room)
	c.room = room
	roomsCreated.Inc()
	c.logger.CreatedRoom(room)
	c.sink.WriteLine(fmt.Sprintf("Created room %d.", room))
	c.registry.Broadcast(room, joinNotice(c.nickname))
	c.sendReconnectKey()
}

func (c *client) joinRoom(room int) {
	if room == 0 || !roomExists(c.registry, room) {
		c.sink.WriteLine(msgInvalidRoom)
		return
	}
	c.registry.SetRoom(c.nickname, room)
	c.room = room
	c.logger.JoinedRoom(room)
	c.registry.Broadcast(room, joinNotice(c.nickname))
	c.sendReconnectKey()
}

func (c *client) exitRoom() {
	if c.room == 0 {
		c.sink.WriteLine(msgNotInRoom)
		return
	}
	room := c.room
	c.registry.SetRoom(c.nickname, 0)
	c.room = 0
	c.sink.WriteLine(msgExitedRoom)
	c.logger.LeftRoom(room)
	if len(c.registry.OccupantsOf(room)) == 0 {
		LogRoomRemoved(room)
	} else {
		c.registry.Broadcast(room, leaveNotice(c.nickname))
	}
	c.sendReconnectKey()
}

func (c *client) chat(text string) {
	if c.room == 0 {
		c.sink.WriteLine(msgJoinFirst)
		return
	}
	c.registry.Broadcast(c.room, c.nickname+": "+text)
}

func (c *client) sendReconnectKey() {
	if c.tokens == nil {
		return
	}
	key, err := c.tokens.GenerateReconnectionJWT(c.nickname, c.room)
	if err != nil {
		return
	}
	c.sink.WriteLine("Reconnect key: " + key)
}

func roomExists(registry *Registry, room int) bool {
	for _, id := range registry.RoomsInUse() {
		if id == room {
			return true
		}
	}
	return false
}
