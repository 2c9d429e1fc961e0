package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chess-rules-backend/internal/config"
	"github.com/benbeisheim/chess-rules-backend/internal/model"
	"github.com/benbeisheim/chess-rules-backend/internal/search"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func newTestService(t *testing.T) *GameService {
	t.Helper()
	return NewGameService(NewGameManager(), config.Default())
}

func move(fr, ff, tr, tf int) model.MoveRequest {
	return model.MoveRequest{From: model.Sq(fr, ff), To: model.Sq(tr, tf)}
}

func mustCreate(t *testing.T, gs *GameService) string {
	t.Helper()
	state, err := gs.CreateGame()
	if err != nil {
		t.Fatalf("CreateGame error: %v", err)
	}
	return state.ID
}

func TestGameLifecycle(t *testing.T) {
	gs := newTestService(t)
	id := mustCreate(t, gs)

	status, err := gs.GetGameState(id)
	if err != nil {
		t.Fatalf("GetGameState error: %v", err)
	}
	if status.ToMove != model.White || status.GameOver || status.Eval != 0 {
		t.Errorf("fresh status = toMove %s gameOver %v eval %d", status.ToMove, status.GameOver, status.Eval)
	}

	if _, err := gs.MakeMove(id, move(6, 4, 4, 4)); err != nil {
		t.Fatalf("MakeMove error: %v", err)
	}
	state, err := gs.ResetGame(id)
	if err != nil {
		t.Fatalf("ResetGame error: %v", err)
	}
	if diff := cmp.Diff(model.NewStandardBoard().Snapshot(), state.Board); diff != "" {
		t.Errorf("board after reset (-want +got):\n%s", diff)
	}
	if len(state.MoveHistory) != 0 {
		t.Errorf("history after reset has %d plies", len(state.MoveHistory))
	}

	if err := gs.DeleteGame(id); err != nil {
		t.Fatalf("DeleteGame error: %v", err)
	}
	if _, err := gs.GetGameState(id); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGameState after delete error = %v, want %v", err, ErrGameNotFound)
	}
	if err := gs.DeleteGame(id); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("second DeleteGame error = %v, want %v", err, ErrGameNotFound)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	gs := newTestService(t)
	a, b := mustCreate(t, gs), mustCreate(t, gs)
	if a == b {
		t.Fatalf("two sessions share id %s", a)
	}

	if _, err := gs.MakeMove(a, move(6, 4, 4, 4)); err != nil {
		t.Fatalf("MakeMove error: %v", err)
	}
	status, err := gs.GetGameState(b)
	if err != nil {
		t.Fatalf("GetGameState error: %v", err)
	}
	if status.ToMove != model.White || len(status.MoveHistory) != 0 {
		t.Errorf("move in %s leaked into %s", a, b)
	}
}

func TestMakeMoveErrors(t *testing.T) {
	gs := newTestService(t)
	id := mustCreate(t, gs)

	if _, err := gs.MakeMove("missing", move(6, 4, 4, 4)); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unknown game error = %v, want %v", err, ErrGameNotFound)
	}
	if _, err := gs.MakeMove(id, move(1, 4, 3, 4)); !errors.Is(err, model.ErrWrongTurn) {
		t.Errorf("black first error = %v, want %v", err, model.ErrWrongTurn)
	}
	if _, err := gs.LegalMoves(id, model.Sq(8, 0)); !errors.Is(err, model.ErrOutOfBounds) {
		t.Errorf("LegalMoves off board error = %v, want %v", err, model.ErrOutOfBounds)
	}
	if _, err := gs.Promote(id, model.Queen); !errors.Is(err, model.ErrNoPromotionPending) {
		t.Errorf("Promote without pending error = %v, want %v", err, model.ErrNoPromotionPending)
	}
}

func TestLegalMoves(t *testing.T) {
	gs := newTestService(t)
	id := mustCreate(t, gs)

	got, err := gs.LegalMoves(id, model.Sq(7, 1))
	if err != nil {
		t.Fatalf("LegalMoves error: %v", err)
	}
	want := []model.Square{model.Sq(5, 0), model.Sq(5, 2)}
	bySquare := cmpopts.SortSlices(func(a, b model.Square) bool {
		return a.Rank < b.Rank || (a.Rank == b.Rank && a.File < b.File)
	})
	if diff := cmp.Diff(want, got, bySquare); diff != "" {
		t.Errorf("knight moves (-want +got):\n%s", diff)
	}
}

func promotionBoard() *model.Board {
	b := model.NewEmptyBoard()
	king := model.NewPiece(model.King, model.White)
	king.HasMoved = true
	b.Place(model.Sq(7, 4), king)
	b.Place(model.Sq(0, 7), model.NewPiece(model.King, model.Black))
	b.Place(model.Sq(1, 0), model.NewPiece(model.Pawn, model.White))
	return b
}

func TestPromotionFlow(t *testing.T) {
	gs := newTestService(t)
	state, err := gs.CreateGameFromBoard(promotionBoard(), model.White)
	if err != nil {
		t.Fatalf("CreateGameFromBoard error: %v", err)
	}

	res, err := gs.MakeMove(state.ID, move(1, 0, 0, 0))
	if err != nil {
		t.Fatalf("MakeMove error: %v", err)
	}
	if !res.PromotionPending {
		t.Fatalf("expected a pending promotion")
	}
	if _, err := gs.AIMove(state.ID, nil, 1); !errors.Is(err, model.ErrPromotionPending) {
		t.Errorf("AIMove while pending error = %v, want %v", err, model.ErrPromotionPending)
	}

	res, err = gs.Promote(state.ID, model.Queen)
	if err != nil {
		t.Fatalf("Promote error: %v", err)
	}
	if res.ToMove != model.Black || !res.InCheck {
		t.Errorf("after promotion toMove %s inCheck %v, want black in check", res.ToMove, res.InCheck)
	}
	if sv := res.Board[0][0]; sv == nil || sv.Type != model.Queen {
		t.Errorf("square (0,0) = %+v, want a queen", sv)
	}

	status, err := gs.GetGameState(state.ID)
	if err != nil {
		t.Fatalf("GetGameState error: %v", err)
	}
	if status.Eval != search.PieceValues[model.Queen] {
		t.Errorf("eval = %d, want %d", status.Eval, search.PieceValues[model.Queen])
	}
}

func TestCreateGameFromBoardRejectsBadSetups(t *testing.T) {
	gs := newTestService(t)

	noBlackKing := model.NewEmptyBoard()
	noBlackKing.Place(model.Sq(7, 4), model.NewPiece(model.King, model.White))

	tests := []struct {
		name   string
		board  *model.Board
		toMove model.Color
	}{
		{"missing king", noBlackKing, model.White},
		{"unknown side", promotionBoard(), model.Color("green")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := gs.CreateGameFromBoard(tt.board, tt.toMove); !errors.Is(err, ErrInvalidSetup) {
				t.Errorf("error = %v, want %v", err, ErrInvalidSetup)
			}
		})
	}
	if n := gs.gameManager.Count(); n != 0 {
		t.Errorf("%d games registered from bad setups", n)
	}
}

func TestAIMoveDeliversMate(t *testing.T) {
	gs := newTestService(t)
	id := mustCreate(t, gs)
	for _, m := range []model.MoveRequest{move(6, 5, 5, 5), move(1, 4, 3, 4), move(6, 6, 4, 6)} {
		if _, err := gs.MakeMove(id, m); err != nil {
			t.Fatalf("MakeMove(%+v) error: %v", m, err)
		}
	}

	res, err := gs.AIMove(id, nil, 0)
	if err != nil {
		t.Fatalf("AIMove error: %v", err)
	}
	if res.Depth != config.Default().DefaultSearchDepth {
		t.Errorf("depth = %d, want the configured default", res.Depth)
	}
	if res.From != model.Sq(0, 3) || res.To != model.Sq(4, 7) {
		t.Errorf("ai played %s -> %s, want (0,3) -> (4,7)", res.From, res.To)
	}
	if !res.GameOver || res.Winner == nil || *res.Winner != model.Black || !res.IsMate {
		t.Errorf("result = gameOver %v winner %v isMate %v, want black checkmate", res.GameOver, res.Winner, res.IsMate)
	}
}

func TestAIMoveDepthIsCapped(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultSearchDepth, cfg.MaxSearchDepth = 1, 1
	gs := NewGameService(NewGameManager(), cfg)
	id := mustCreate(t, gs)

	res, err := gs.AIMove(id, nil, 6)
	if err != nil {
		t.Fatalf("AIMove error: %v", err)
	}
	if res.Depth != 1 {
		t.Errorf("depth = %d, want 1", res.Depth)
	}
	if res.ToMove != model.Black {
		t.Errorf("side to move after ai move = %s, want black", res.ToMove)
	}

	white := model.White
	if _, err := gs.AIMove(id, &white, 1); !errors.Is(err, model.ErrWrongTurn) {
		t.Errorf("AIMove for the waiting side error = %v, want %v", err, model.ErrWrongTurn)
	}
}

func TestGameManagerConcurrentAccess(t *testing.T) {
	gm := NewGameManager()
	var wg sync.WaitGroup
	ids := make(chan string, 32)

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := gm.CreateGame(NewGameID())
			if err != nil {
				t.Errorf("CreateGame error: %v", err)
				return
			}
			ids <- g.ID
		}()
	}
	wg.Wait()
	close(ids)

	if n := gm.Count(); n != 32 {
		t.Fatalf("Count = %d, want 32", n)
	}
	for id := range ids {
		if _, err := gm.GetGame(id); err != nil {
			t.Errorf("GetGame(%s) error: %v", id, err)
		}
	}
	if _, err := gm.AddGame(model.NewGame("dup")); err != nil {
		t.Fatalf("AddGame error: %v", err)
	}
	if _, err := gm.AddGame(model.NewGame("dup")); !errors.Is(err, ErrGameExists) {
		t.Errorf("duplicate AddGame error = %v, want %v", err, ErrGameExists)
	}
}
