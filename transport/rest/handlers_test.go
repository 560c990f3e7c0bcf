package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/repository"
)

type mockGameUseCase struct {
	mock.Mock
}

func (that *mockGameUseCase) NewGame(ctx context.Context) (*entity.Game, error) {
	args := that.Called(ctx)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error) {
	args := that.Called(ctx, id, row, col)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameUseCase) AbandonGame(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func newTestRouter(t *testing.T) (http.Handler, *mockGameUseCase) {
	t.Helper()

	uGame := &mockGameUseCase{}
	t.Cleanup(func() { uGame.AssertExpectations(t) })

	return NewRouter(slog.New(slog.NewJSONHandler(io.Discard, nil)), uGame), uGame
}

func serve(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func testGame(t *testing.T) *entity.Game {
	t.Helper()

	board, err := entity.NewBoard(3, 3)
	require.NoError(t, err)
	require.NoError(t, board.Set(1, 1, entity.MarkX))

	return &entity.Game{
		ID:         "g1",
		Board:      board,
		RunLength:  3,
		HumanMark:  entity.MarkO,
		EngineMark: entity.MarkX,
		State:      entity.StateAwaitingHuman,
		Result:     entity.InProgress(),
		LastMove:   &entity.Move{Position: entity.Position{Row: 1, Col: 1}, Mark: entity.MarkX},
	}
}

type gameBody struct {
	ID    string `json:"id"`
	Board struct {
		Rows  int        `json:"rows"`
		Cols  int        `json:"cols"`
		Cells [][]string `json:"cells"`
	} `json:"board"`
	HumanMark string `json:"human_mark"`
	State     string `json:"state"`
	Turn      string `json:"turn"`
	Result    struct {
		Outcome string `json:"outcome"`
		Winner  string `json:"winner"`
	} `json:"result"`
}

func decodeGame(t *testing.T, rec *httptest.ResponseRecorder) gameBody {
	t.Helper()

	var body gameBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	return body
}

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(t, router, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestCreateGame(t *testing.T) {
	t.Run("Returns the new game", func(t *testing.T) {
		// Given: a use case creating a game the engine opened
		router, uGame := newTestRouter(t)
		uGame.On("NewGame", mock.Anything).Return(testGame(t), nil).Once()

		// When: POST /games
		rec := serve(t, router, http.MethodPost, "/games", "")

		// Then: 201 with the board and whose turn it is
		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeGame(t, rec)
		assert.Equal(t, "g1", body.ID)
		assert.Equal(t, 3, body.Board.Rows)
		assert.Equal(t, []string{"", "X", ""}, body.Board.Cells[1])
		assert.Equal(t, "O", body.HumanMark)
		assert.Equal(t, "O", body.Turn)
		assert.Equal(t, entity.OutcomeInProgress, body.Result.Outcome)
	})

	t.Run("Storage failure is an internal error", func(t *testing.T) {
		router, uGame := newTestRouter(t)
		uGame.On("NewGame", mock.Anything).Return(nil, fmt.Errorf("failed to update game: %w", assert.AnError)).Once()

		rec := serve(t, router, http.MethodPost, "/games", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
	})
}

func TestGetGame(t *testing.T) {
	t.Run("Existing game", func(t *testing.T) {
		router, uGame := newTestRouter(t)
		uGame.On("GetGame", mock.Anything, "g1").Return(testGame(t), nil).Once()

		rec := serve(t, router, http.MethodGet, "/games/g1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "g1", decodeGame(t, rec).ID)
	})

	t.Run("Unknown game", func(t *testing.T) {
		router, uGame := newTestRouter(t)
		uGame.On("GetGame", mock.Anything, "nope").Return(nil, repository.ErrGameNotFound).Once()

		rec := serve(t, router, http.MethodGet, "/games/nope", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"game not found"}`, rec.Body.String())
	})
}

func TestClick(t *testing.T) {
	t.Run("Plays the move", func(t *testing.T) {
		// Given: a game the human wins with this click
		router, uGame := newTestRouter(t)
		game := testGame(t)
		game.State = entity.StateFinished
		game.Result = entity.Win(entity.MarkO)
		uGame.On("MakeTurn", mock.Anything, "g1", 0, 2).Return(game, nil).Once()

		// When: the click is posted
		rec := serve(t, router, http.MethodPost, "/games/g1/clicks", `{"row":0,"col":2}`)

		// Then: the finished game has no turn and names the winner
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeGame(t, rec)
		assert.Equal(t, entity.StateFinished, body.State)
		assert.Empty(t, body.Turn)
		assert.Equal(t, entity.OutcomeWin, body.Result.Outcome)
		assert.Equal(t, "O", body.Result.Winner)
	})

	t.Run("Malformed bodies are rejected", func(t *testing.T) {
		router, _ := newTestRouter(t)

		for _, body := range []string{``, `{`, `{"row":1}`, `{"row":"a","col":1}`} {
			rec := serve(t, router, http.MethodPost, "/games/g1/clicks", body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		}
	})

	t.Run("Errors map to status codes", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"unknown game", repository.ErrGameNotFound, http.StatusNotFound},
			{"occupied", fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrCellOccupied), http.StatusUnprocessableEntity},
			{"out of bounds", fmt.Errorf("%w: %w", apperror.ErrInvalidMove, apperror.ErrOutOfBounds), http.StatusUnprocessableEntity},
			{"finished", apperror.ErrGameFinished, http.StatusConflict},
			{"not your turn", apperror.ErrNotYourTurn, http.StatusConflict},
			{"storage", assert.AnError, http.StatusInternalServerError},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				router, uGame := newTestRouter(t)
				uGame.On("MakeTurn", mock.Anything, "g1", 5, 5).Return(nil, tc.err).Once()

				rec := serve(t, router, http.MethodPost, "/games/g1/clicks", `{"row":5,"col":5}`)

				assert.Equal(t, tc.status, rec.Code)
			})
		}
	})
}

func TestAbandonGame(t *testing.T) {
	t.Run("Deletes the game", func(t *testing.T) {
		router, uGame := newTestRouter(t)
		uGame.On("AbandonGame", mock.Anything, "g1").Return(nil).Once()

		rec := serve(t, router, http.MethodDelete, "/games/g1", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Unknown game", func(t *testing.T) {
		router, uGame := newTestRouter(t)
		uGame.On("AbandonGame", mock.Anything, "nope").Return(fmt.Errorf("failed to delete game: %w", repository.ErrGameNotFound)).Once()

		rec := serve(t, router, http.MethodDelete, "/games/nope", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
