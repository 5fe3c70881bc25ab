package nakama

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"strings"
	"time"

	"whist/internal/app"
	"whist/internal/app/settings"
	"whist/internal/bot"
	"whist/internal/config"
	"whist/internal/domain"
	"whist/internal/ports"
	"whist/internal/variant"

	"github.com/heroiclabs/nakama-common/runtime"
)

var (
	gameConfig   *config.GameConfig
	ticketSealer *app.TicketSealer
)

// maxBotSteps bounds the bot decisions taken in one RPC; a full hand needs
// well under this.
const maxBotSteps = 256

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcVariants:    rpcListVariants,
		RpcNewHand:     rpcNewHand,
		RpcAct:         rpcAct,
		RpcSettingsGet: rpcGetSettings,
		RpcSettingsSet: rpcSetSettings,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}
	return nil
}

// TableResponse is returned by the hand RPCs. Ticket must be sent back with
// the next action; it is only good for the table as shown.
type TableResponse struct {
	Ticket   string        `json:"ticket"`
	Game     *app.Game     `json:"game"`
	Hand     app.HandView  `json:"hand"`
	Events   []EventRecord `json:"events"`
}

// EventRecord is an app event as seen by the caller.
type EventRecord struct {
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
}

// rpcListVariants returns the metadata of every registered variant.
func rpcListVariants(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return marshalResponse(map[string]interface{}{"variants": variant.Describe()})
}

// rpcNewHand starts a game for the caller against three bots and deals the
// first hand. Without a variant in the payload the caller's saved settings
// are used.
//
// Payload: {"variant": "bid_whist", "house": {...}} (both optional)
func rpcNewHand(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("No user in context", codeUnauthenticated)
	}
	if ticketSealer == nil || nk == nil {
		return "", runtime.NewError("Tables are not configured", codeFailedPrecondition)
	}
	var req struct {
		Variant string         `json:"variant"`
		House   *variant.House `json:"house"`
	}
	if err := unmarshalRequest(payload, &req); err != nil {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}

	choice := ports.TableSettings{Variant: variant.ID(req.Variant)}
	if req.House != nil {
		choice.House = *req.House
	}
	if req.Variant == "" {
		stored, err := settingsFor(nk).Get(ctx, userID)
		if err != nil {
			logger.Warn("RpcNewHand [User:%s]: using default settings: %v", userID, err)
			stored = settingsFor(nil).Defaults()
		}
		choice = stored
	}
	if err := settings.Validate(choice); err != nil {
		return "", rpcError(logger, "RpcNewHand", err)
	}

	players := domain.Roster{userID}
	for i := 1; i < domain.NumSeats; i++ {
		players[i] = botPrefix + bot.NewAgent("", nil).ID
	}

	svc := app.NewService(nil, logger)
	g, err := svc.NewGame(choice.Variant, choice.House, players, domain.West)
	if err != nil {
		return "", rpcError(logger, "RpcNewHand", err)
	}
	h, events, err := svc.StartHand(g)
	if err != nil {
		return "", rpcError(logger, "RpcNewHand", err)
	}
	table := app.Table{Game: g, Hand: h}
	more, err := runBots(svc, &table)
	if err != nil {
		return "", rpcError(logger, "RpcNewHand", err)
	}
	table.Step++
	if err := NewNakamaTableAdapter(nk).SaveTable(ctx, userID, table, ""); err != nil {
		return "", rpcError(logger, "RpcNewHand", err)
	}
	logger.Info("RpcNewHand [User:%s]: started %s hand %s", userID, choice.Variant, h.ID)
	return respond(svc, table, userID, append(events, more...))
}

// actRequest is one player action against the caller's table.
type actRequest struct {
	Ticket      string             `json:"ticket"`
	Action      string             `json:"action"`
	Bid         bidRequest         `json:"bid"`
	Cards       []string           `json:"cards"`
	Card        string             `json:"card"`
	Declaration declarationRequest `json:"declaration"`
}

// rpcAct applies the caller's action to their stored table, lets the bots act
// until a human is due again, and returns a fresh ticket and view. A ticket
// from any earlier step is refused.
//
// Actions: bid, exchange, declare, play, claim, redeal, next_hand, auto.
func rpcAct(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("No user in context", codeUnauthenticated)
	}
	if ticketSealer == nil || nk == nil {
		return "", runtime.NewError("Tables are not configured", codeFailedPrecondition)
	}
	var req actRequest
	if err := unmarshalRequest(payload, &req); err != nil {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	ticket, err := ticketSealer.Open(req.Ticket)
	if err != nil {
		logger.Debug("RpcAct [User:%s]: %v", userID, err)
		return "", runtime.NewError("Invalid ticket", codeUnauthenticated)
	}
	if ticket.UserID != userID {
		return "", runtime.NewError("Ticket belongs to another player", codePermissionDenied)
	}

	store := NewNakamaTableAdapter(nk)
	table, version, found, err := store.LoadTable(ctx, userID)
	if err != nil {
		return "", rpcError(logger, "RpcAct", err)
	}
	if !found || table.Game == nil || table.Hand == nil {
		return "", runtime.NewError("No table in progress", codeNotFound)
	}
	if err := ticket.Admits(table); err != nil {
		return "", runtime.NewError("Ticket is out of date", codeAborted)
	}
	seat, ok := table.Game.Players.SeatOf(userID)
	if !ok {
		return "", runtime.NewError("Not seated at this table", codePermissionDenied)
	}

	svc := app.NewService(nil, logger.WithField("user", userID))
	events, err := apply(svc, &table, seat, req)
	if err != nil {
		return "", rpcError(logger, "RpcAct", err)
	}
	more, err := runBots(svc, &table)
	if err != nil {
		return "", rpcError(logger, "RpcAct", err)
	}
	table.Step++
	if err := store.SaveTable(ctx, userID, table, version); err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return "", runtime.NewError("Table changed concurrently", codeAborted)
		}
		return "", rpcError(logger, "RpcAct", err)
	}
	return respond(svc, table, userID, append(events, more...))
}

func apply(svc *app.Service, table *app.Table, seat domain.Seat, req actRequest) ([]app.Event, error) {
	h := table.Hand
	switch strings.ToLower(req.Action) {
	case "bid":
		bid, err := req.Bid.toBid()
		if err != nil {
			return nil, err
		}
		return svc.Bid(h, seat, bid)
	case "exchange":
		cards, err := parseCardList(req.Cards)
		if err != nil {
			return nil, err
		}
		return svc.Exchange(h, seat, cards)
	case "declare":
		d, err := req.Declaration.toDeclaration()
		if err != nil {
			return nil, err
		}
		return svc.DeclareTrump(h, seat, d)
	case "play":
		c, err := domain.ParseCard(req.Card)
		if err != nil {
			return nil, err
		}
		return svc.Play(h, seat, c)
	case "claim":
		events, err := svc.ProposeClaim(h, seat)
		if err != nil {
			return nil, err
		}
		more, accepted, err := svc.ArbitrateClaim(h)
		if err != nil {
			return nil, err
		}
		if !accepted {
			return nil, domain.InvalidPlay(domain.CodeClaimRejected, "%s is not sure to take every remaining trick", seat)
		}
		return append(events, more...), nil
	case "redeal":
		next, events, err := svc.Redeal(h)
		if err != nil {
			return nil, err
		}
		table.Hand = next
		return events, nil
	case "next_hand":
		if h.Phase != domain.PhaseScored {
			return nil, app.ErrWrongPhase
		}
		next, events, err := svc.StartHand(table.Game)
		if err != nil {
			return nil, err
		}
		table.Hand = next
		return events, nil
	case "auto":
		b, err := svc.Bundle(h)
		if err != nil {
			return nil, err
		}
		if due, ok := h.Turn(b); !ok || due != seat {
			return nil, domain.InvalidPlay(domain.CodeOutOfTurn, "it is not %s's turn", seat)
		}
		return svc.Auto(h, agentFor(table.Game.Players[seat]))
	default:
		return nil, domain.Malformed(domain.CodeInvalidFormat, "unknown action %q", req.Action)
	}
}

// runBots lets bot seats act until a human is due or the hand stops, and
// records a freshly scored hand into the game.
func runBots(svc *app.Service, table *app.Table) ([]app.Event, error) {
	var events []app.Event
	h := table.Hand
	for step := 0; step < maxBotSteps; step++ {
		b, err := svc.Bundle(h)
		if err != nil {
			return events, err
		}
		seat, ok := h.Turn(b)
		if !ok || !isBot(table.Game.Players[seat]) {
			break
		}
		more, err := svc.Auto(h, agentFor(table.Game.Players[seat]))
		if err != nil {
			return events, err
		}
		events = append(events, more...)
	}
	if h.Phase == domain.PhaseScored && table.Game.HandsPlayed < h.Number {
		more, err := svc.RecordHand(table.Game, h)
		if err != nil {
			return events, err
		}
		events = append(events, more...)
	}
	return events, nil
}

func isBot(id string) bool {
	return strings.HasPrefix(id, botPrefix)
}

func agentFor(id string) *bot.Agent {
	level := bot.LevelFirst
	if gameConfig != nil {
		level = gameConfig.BotLevel
	}
	brain, err := bot.NewBrain(level, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		brain = bot.FirstLegal{}
	}
	return &bot.Agent{ID: strings.TrimPrefix(id, botPrefix), Name: id, Strategy: brain}
}

func respond(svc *app.Service, table app.Table, userID string, events []app.Event) (string, error) {
	seat, _ := table.Game.Players.SeatOf(userID)
	resp := TableResponse{
		Game:   table.Game,
		Hand:   svc.View(table.Hand, seat),
		Events: visibleEvents(events, userID),
	}
	token, err := ticketSealer.Seal(userID, table)
	if err != nil {
		return "", runtime.NewError("Internal error", codeInternal)
	}
	resp.Ticket = token
	return marshalResponse(resp)
}

func visibleEvents(events []app.Event, userID string) []EventRecord {
	out := make([]EventRecord, 0, len(events))
	for _, ev := range events {
		if len(ev.Recipients) > 0 && !contains(ev.Recipients, userID) {
			continue
		}
		out = append(out, EventRecord{Kind: string(ev.Kind), Payload: ev.Payload})
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// rpcGetSettings returns the caller's table settings.
func rpcGetSettings(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("No user in context", codeUnauthenticated)
	}
	s, err := settingsFor(nk).Get(ctx, userID)
	if err != nil {
		return "", rpcError(logger, "rpcGetSettings", err)
	}
	return marshalResponse(s)
}

// rpcSetSettings validates and stores the caller's table settings.
//
// Payload: {"variant": "oh_hell", "house": {"target_score": 150}}
func rpcSetSettings(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("No user in context", codeUnauthenticated)
	}
	var req ports.TableSettings
	if err := unmarshalRequest(payload, &req); err != nil {
		return "", runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	s, err := settingsFor(nk).Set(ctx, userID, req)
	if err != nil {
		return "", rpcError(logger, "rpcSetSettings", err)
	}
	logger.Info("rpcSetSettings [User:%s]: now playing %s", userID, s.Variant)
	return marshalResponse(s)
}

func settingsFor(nk runtime.NakamaModule) *settings.Service {
	if nk == nil {
		return settings.NewService(nil, gameConfig)
	}
	return settings.NewService(NewNakamaSettingsAdapter(nk), gameConfig)
}

var preconditionErrors = []error{
	app.ErrWrongPhase,
	app.ErrNotDeclarer,
	app.ErrClaimsDisabled,
	app.ErrClaimPending,
	app.ErrNoClaim,
	app.ErrMidTrick,
	app.ErrHandNotScored,
	app.ErrGameOver,
	app.ErrSeatsOpen,
}

// rpcError maps a service error onto a runtime error with a gRPC code. Rule
// errors carry a reason meant for the player.
func rpcError(logger runtime.Logger, op string, err error) error {
	var re *domain.RuleError
	if errors.As(err, &re) {
		return runtime.NewError(re.Error(), codeInvalidArgument)
	}
	for _, target := range preconditionErrors {
		if errors.Is(err, target) {
			return runtime.NewError(err.Error(), codeFailedPrecondition)
		}
	}
	if errors.Is(err, app.ErrUnknownPlayer) {
		return runtime.NewError(err.Error(), codeNotFound)
	}
	logger.Error("%s: %v", op, err)
	return runtime.NewError("Internal error", codeInternal)
}
