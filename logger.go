package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

type ClientLogger struct {
	zerolog zerolog.Logger
}

func GetClientLogger(addr string, transport string) ClientLogger {
	return ClientLogger{log.With().Str("addr", addr).Str("transport", transport).Logger()}
}

func (l ClientLogger) Registered(nickname string) {
	l.zerolog.Info().Str("nickname", nickname).Msg("Registered")
}

func (l ClientLogger) Reconnected(nickname string) {
	l.zerolog.Info().Str("nickname", nickname).Msg("Reconnected")
}

func (l ClientLogger) Disconnected(nickname string) {
	l.zerolog.Info().Str("nickname", nickname).Msg("Disconnected")
}

func (l ClientLogger) CreatedRoom(room int) {
	l.zerolog.Info().Int("room", room).Msg("Created room")
}

func (l ClientLogger) JoinedRoom(room int) {
	l.zerolog.Info().Int("room", room).Msg("Joined room")
}

func (l ClientLogger) LeftRoom(room int) {
	l.zerolog.Info().Int("room", room).Msg("Left room")
}

func LogRoomRemoved(room int) {
	log.Info().Int("room", room).Msg("Removed empty room")
}

func LogPeerDropped(nickname string, err error) {
	log.Warn().Err(err).Str("nickname", nickname).Msg("Dropped unreachable peer")
}

func LogStartedTCPServer(addr string) {
	log.Info().Msgf("Starting TCP server on %v", addr)
}

func LogStartedHTTPServer(addr string) {
	log.Info().Msgf("Starting HTTP server on %v", addr)
}

func LogAcceptError(err error) {
	log.Error().Err(err).Msg("Error while accepting connection")
}

func LogErrorWhileUpgradingHTTP(err error) {
	log.Error().Err(err).Msg("Error while upgrading HTTP")
}
