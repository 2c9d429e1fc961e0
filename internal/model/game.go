package model

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// Phase is where a game sits in the move cycle.
type Phase string

const (
	PhaseAwaitingMove     Phase = "awaitingMove"
	PhasePromotionPending Phase = "promotionPending"
)

// pendingPromotion holds a pawn move that reached the back rank without a choice. The
// board already reflects the move; the turn has not passed.
type pendingPromotion struct {
	ply Ply
}

// Game is one session. Every exported method takes mu for its whole duration, so each
// query or move observes a consistent board even with several callers.
type Game struct {
	ID string
	mu sync.Mutex

	board          *Board
	toMove         Color
	lastMove       *LastMove
	winner         *Color
	stalemate      bool
	phase          Phase
	pending        *pendingPromotion
	history        []Ply
	capturedPieces CapturedPieces
}

// GameState is the read-only projection handed to transports.
type GameState struct {
	ID                string         `json:"gameId"`
	Board             Snapshot       `json:"board"`
	ToMove            Color          `json:"toMove"`
	Phase             Phase          `json:"phase"`
	IsCheck           bool           `json:"isCheck"`
	KingInCheck       *Square        `json:"kingInCheck"`
	GameOver          bool           `json:"gameOver"`
	Winner            *Color         `json:"winner"`
	Stalemate         bool           `json:"stalemate"`
	WhiteKingPosition *Square        `json:"whiteKingPosition"`
	BlackKingPosition *Square        `json:"blackKingPosition"`
	PromotionSquare   *Square        `json:"promotionSquare"`
	LastMove          *LastMove      `json:"lastMove"`
	MoveHistory       []Ply          `json:"moveHistory"`
	CapturedPieces    CapturedPieces `json:"capturedPieces"`
}

// CapturedPieces lists material taken by each side.
type CapturedPieces struct {
	White []SquareView `json:"white"`
	Black []SquareView `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]SquareView, 0),
		Black: make([]SquareView, 0),
	}
}

func NewGame(id string) *Game {
	return NewGameFromBoard(id, NewStandardBoard(), White)
}

// NewGameFromBoard starts a session from an arbitrary position with no previous move.
func NewGameFromBoard(id string, board *Board, toMove Color) *Game {
	return &Game{
		ID:             id,
		board:          board,
		toMove:         toMove,
		phase:          PhaseAwaitingMove,
		history:        make([]Ply, 0),
		capturedPieces: newCapturedPieces(),
	}
}

// Reset puts the session back to the initial position.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.board = NewStandardBoard()
	g.toMove = White
	g.lastMove = nil
	g.winner = nil
	g.stalemate = false
	g.phase = PhaseAwaitingMove
	g.pending = nil
	g.history = make([]Ply, 0)
	g.capturedPieces = newCapturedPieces()
}

// Clone returns an independent session with the same position, history and phase.
func (g *Game) Clone(id string) *Game {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := &Game{
		ID:        id,
		board:     g.board.clone(),
		toMove:    g.toMove,
		stalemate: g.stalemate,
		phase:     g.phase,
		history:   slices.Clone(g.history),
		capturedPieces: CapturedPieces{
			White: slices.Clone(g.capturedPieces.White),
			Black: slices.Clone(g.capturedPieces.Black),
		},
	}
	if g.lastMove != nil {
		lm := *g.lastMove
		c.lastMove = &lm
	}
	if g.winner != nil {
		w := *g.winner
		c.winner = &w
	}
	if g.pending != nil {
		p := *g.pending
		c.pending = &p
	}
	return c
}

func (g *Game) ToMove() Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.toMove
}

func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Game) LastMove() *LastMove {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastMove == nil {
		return nil
	}
	lm := *g.lastMove
	return &lm
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Snapshot()
}

// AttemptMove validates and plays a move for the side to move. A rejected move returns
// an error and changes nothing. A pawn reaching the back rank without a promotion choice
// is played but leaves the game in PhasePromotionPending until Promote is called.
func (g *Game) AttemptMove(req MoveRequest) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhasePromotionPending {
		return MoveResult{}, ErrPromotionPending
	}
	if !req.From.InBounds() || !req.To.InBounds() {
		return MoveResult{}, fmt.Errorf("%w: %s -> %s", ErrOutOfBounds, req.From, req.To)
	}

	piece := g.board.At(req.From)
	if piece == nil {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrInvalidSource, req.From)
	}
	if piece.Color != g.toMove {
		return MoveResult{}, fmt.Errorf("%w: %s to move", ErrWrongTurn, g.toMove)
	}
	if !slices.Contains(g.legalMoves(req.From), req.To) {
		return MoveResult{}, fmt.Errorf("%w: %s -> %s", ErrIllegalDestination, req.From, req.To)
	}
	if isPromotionMove(piece, req.To) && req.Promotion != "" && !req.Promotion.IsPromotionChoice() {
		return MoveResult{}, fmt.Errorf("%w: %q", ErrInvalidPromotionChoice, req.Promotion)
	}

	return g.executeMove(req), nil
}

// executeMove applies a validated move: castling rook, capture bookkeeping, relocation,
// HasMoved, then either promotion and completion or a pending promotion.
func (g *Game) executeMove(req MoveRequest) MoveResult {
	from, to := req.From, req.To
	piece := g.board.At(from)
	ply := Ply{Piece: *piece, From: from, To: to}

	if piece.Type == King && abs(to.File-from.File) == 2 {
		ply.CastleRookMove = g.handleCastle(from, to)
	}

	captured := g.board.At(to)
	if captured == nil && isEnPassantCapture(piece, from, to, g.lastMove) {
		victimSq := enPassantVictim(from, to)
		captured = g.board.At(victimSq)
		g.board.set(victimSq, nil)
		ply.EnPassant = true
	}

	g.board.set(to, piece)
	g.board.set(from, nil)
	if piece.Type.tracksMoved() {
		piece.HasMoved = true
	}

	if captured != nil {
		view := SquareView{Color: captured.Color, Type: captured.Type}
		ply.CapturedPiece = &view
		g.recordCapture(piece.Color, view)
	}

	if isPromotionMove(piece, to) {
		if req.Promotion == "" {
			g.phase = PhasePromotionPending
			g.pending = &pendingPromotion{ply: ply}
			return g.moveResult(ply)
		}
		g.board.set(to, NewPiece(req.Promotion, piece.Color))
		ply.Promotion = req.Promotion
	}

	g.completeMove(ply)
	return g.moveResult(ply)
}

// Promote supplies the piece owed by a pending promotion and completes the move.
func (g *Game) Promote(choice PieceType) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePromotionPending {
		return MoveResult{}, ErrNoPromotionPending
	}
	if !choice.IsPromotionChoice() {
		return MoveResult{}, fmt.Errorf("%w: %q", ErrInvalidPromotionChoice, choice)
	}

	ply := g.pending.ply
	g.board.set(ply.To, NewPiece(choice, ply.Piece.Color))
	ply.Promotion = choice
	g.completeMove(ply)
	return g.moveResult(ply), nil
}

func (g *Game) recordCapture(by Color, view SquareView) {
	switch by {
	case White:
		g.capturedPieces.White = append(g.capturedPieces.White, view)
	case Black:
		g.capturedPieces.Black = append(g.capturedPieces.Black, view)
	}
}

// completeMove records the ply and passes the turn. moveResult classifies the new
// position afterwards.
func (g *Game) completeMove(ply Ply) {
	g.history = append(g.history, ply)
	g.lastMove = &LastMove{From: ply.From, To: ply.To, Piece: ply.Piece}
	g.phase = PhaseAwaitingMove
	g.pending = nil
	g.switchTurn()
}

func (g *Game) switchTurn() {
	g.toMove = g.toMove.Opponent()
}

func (g *Game) moveResult(ply Ply) MoveResult {
	res := MoveResult{
		From:             ply.From,
		To:               ply.To,
		CapturedPiece:    ply.CapturedPiece,
		PromotionPending: g.phase == PhasePromotionPending,
		Castle:           ply.CastleRookMove != nil,
		EnPassant:        ply.EnPassant,
		Promotion:        ply.Promotion,
		ToMove:           g.toMove,
		InCheck:          g.isInCheck(g.toMove),
		Board:            g.board.Snapshot(),
	}
	if sq, ok := g.kingPosition(g.toMove); ok {
		res.KingPosition = &sq
	}
	if !res.PromotionPending {
		res.GameOver = g.isGameOver()
		res.Winner = g.copyWinner()
		res.Stalemate = g.stalemate
	}
	return res
}

// isGameOver classifies the position for the side to move: any legal move means play
// goes on; otherwise check means checkmate and no check means stalemate. Calling it again
// without a move in between gives the same answer. A game waiting on a promotion choice
// is never over.
func (g *Game) isGameOver() bool {
	if g.phase == PhasePromotionPending {
		return false
	}
	if g.hasLegalMove(g.toMove) {
		g.winner = nil
		g.stalemate = false
		return false
	}
	if g.isInCheck(g.toMove) {
		w := g.toMove.Opponent()
		g.winner = &w
		g.stalemate = false
	} else {
		g.winner = nil
		g.stalemate = true
	}
	return true
}

func (g *Game) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isGameOver()
}

func (g *Game) copyWinner() *Color {
	if g.winner == nil {
		return nil
	}
	w := *g.winner
	return &w
}

// Winner is the checkmating color as of the last terminal classification, or nil.
func (g *Game) Winner() *Color {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.copyWinner()
}

func (g *Game) IsStalemate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stalemate
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := GameState{
		ID:          g.ID,
		Board:       g.board.Snapshot(),
		ToMove:      g.toMove,
		Phase:       g.phase,
		IsCheck:     g.isInCheck(g.toMove),
		GameOver:    g.isGameOver(),
		Winner:      g.copyWinner(),
		Stalemate:   g.stalemate,
		MoveHistory: slices.Clone(g.history),
		CapturedPieces: CapturedPieces{
			White: slices.Clone(g.capturedPieces.White),
			Black: slices.Clone(g.capturedPieces.Black),
		},
	}
	if state.IsCheck {
		if sq, ok := g.kingPosition(g.toMove); ok {
			state.KingInCheck = &sq
		}
	}
	if sq, ok := g.kingPosition(White); ok {
		state.WhiteKingPosition = &sq
	}
	if sq, ok := g.kingPosition(Black); ok {
		state.BlackKingPosition = &sq
	}
	if g.pending != nil {
		sq := g.pending.ply.To
		state.PromotionSquare = &sq
	}
	if g.lastMove != nil {
		lm := *g.lastMove
		state.LastMove = &lm
	}
	return state
}
