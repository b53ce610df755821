package main

import (
	"strconv"
	"strings"
)

type CommandKind int

const (
	CmdChat CommandKind = iota
	CmdDisconnect
	CmdListRooms
	CmdCreateRoom
	CmdJoinRoom
	CmdExitRoom
	CmdUnknown
	CmdMalformed
)

type Command struct {
	Kind CommandKind
	Room int
	Text string
}

// ParseCommand classifies one input line. It is stateless: room validation
// happens later, in the handler.
func ParseCommand(line string) Command {
	if !strings.HasPrefix(line, "/") {
		return Command{Kind: CmdChat, Text: line}
	}
	switch {
	case strings.EqualFold(line, "/bye"):
		return Command{Kind: CmdDisconnect}
	case strings.EqualFold(line, "/list"):
		return Command{Kind: CmdListRooms}
	case strings.EqualFold(line, "/create"):
		return Command{Kind: CmdCreateRoom}
	case strings.EqualFold(line, "/exit"):
		return Command{Kind: CmdExitRoom}
	case strings.EqualFold(line, "/join"):
		return Command{Kind: CmdMalformed}
	}
	if len(line) > 5 && strings.EqualFold(line[:5], "/join") && (line[5] == ' ' || line[5] == '\t') {
		room, err := strconv.Atoi(strings.TrimSpace(line[5:]))
		if err != nil {
			return Command{Kind: CmdMalformed}
		}
		return Command{Kind: CmdJoinRoom, Room: room}
	}
	return Command{Kind: CmdUnknown}
}
