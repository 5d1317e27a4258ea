package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/bestfirst"
	"github.com/pdrpinto/bestfirst/puzzle"
)

// snapshot is the JSON form of one search step.
type snapshot struct {
	Step      int             `json:"step"`
	Rows      int             `json:"rows"`
	Cols      int             `json:"cols"`
	Initial   [][]int         `json:"initial"`
	Current   [][]int         `json:"current,omitempty"`
	Blank     puzzle.Position `json:"blank"`
	PathCost  float64         `json:"path_cost"`
	Frontier  int             `json:"frontier"`
	Admitted  int             `json:"admitted"`
	Visited   int             `json:"visited"`
	Done      bool            `json:"done"`
	Found     bool            `json:"found"`
	Solution  []string        `json:"solution,omitempty"`
	Expanded  int             `json:"expanded"`
	Status    string          `json:"status"`
	Heuristic int             `json:"heuristic"`
}

// stepServer drives a puzzle Stepper over HTTP. /init starts a new
// puzzle and /next advances the search one expansion.
type stepServer struct {
	mu       sync.Mutex
	initial  puzzle.State
	stepper  *bestfirst.Stepper[puzzle.State, puzzle.Action]
	maxSteps int
	logger   *slog.Logger
	defaults func() (puzzle.State, int64, error)
}

func newStepServer(a *app) *stepServer {
	return &stepServer{
		maxSteps: a.cfg.Search.MaxExpansions,
		logger:   a.logger,
		defaults: a.newPuzzle,
	}
}

func (s *stepServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/init", s.handleInit)
	mux.HandleFunc("/next", s.handleNext)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *stepServer) handleInit(w http.ResponseWriter, r *http.Request) {
	initial, seed, err := s.defaults()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	q := r.URL.Query()
	rows, cols := initial.Rows(), initial.Cols()
	moves := -1
	custom := false
	if v, err := strconv.Atoi(q.Get("rows")); err == nil && v > 0 {
		rows, custom = v, true
	}
	if v, err := strconv.Atoi(q.Get("cols")); err == nil && v > 0 {
		cols, custom = v, true
	}
	if v, err := strconv.Atoi(q.Get("moves")); err == nil && v >= 0 {
		moves, custom = v, true
	}
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		seed, custom = v, true
	}
	if moves < 0 {
		moves = puzzle.DefaultShuffleMoves(rows, cols)
	}
	if custom {
		initial, err = puzzle.Shuffled(rows, cols, moves, rand.New(rand.NewSource(seed)))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	stepper, err := bestfirst.NewStepper[puzzle.State, puzzle.Action](puzzle.NewProblem(initial),
		func(node *bestfirst.Node[puzzle.State, puzzle.Action]) float64 {
			return node.PathCost() + puzzle.Manhattan(node.State())
		}, bestfirst.WithMaxExpansions(s.maxSteps))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.initial, s.stepper = initial, stepper
	s.mu.Unlock()

	s.logger.Info("puzzle initialised",
		slog.Int("rows", initial.Rows()),
		slog.Int("cols", initial.Cols()),
		slog.Int64("seed", seed),
	)
	writeJSON(w, map[string]any{"ok": true, "rows": initial.Rows(), "cols": initial.Cols(), "grid": initial.Grid()})
}

func (s *stepServer) handleNext(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepper == nil {
		http.Error(w, "engine not initialized", http.StatusBadRequest)
		return
	}
	st, err := s.stepper.Step()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, bestfirst.ErrBudgetExceeded) {
			status = http.StatusUnprocessableEntity
		}
		http.Error(w, err.Error(), status)
		return
	}

	result := s.stepper.Result()
	out := snapshot{
		Step:     st.StepIndex,
		Rows:     s.initial.Rows(),
		Cols:     s.initial.Cols(),
		Initial:  s.initial.Grid(),
		Frontier: st.FrontierSize,
		Admitted: len(st.Admitted),
		Visited:  len(st.CostSoFar),
		Done:     st.Done,
		Found:    st.Found,
		Expanded: result.Expanded,
		Status:   string(st.Status),
	}
	if st.Current != nil {
		state := st.Current.State()
		out.Current = state.Grid()
		out.Blank = state.Blank()
		out.PathCost = st.Current.PathCost()
		out.Heuristic = state.Heuristic()
	}
	for _, action := range st.Solution {
		out.Solution = append(out.Solution, action.String())
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a JSON API that steps the solver one expansion at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := &http.Server{
				Handler:           newStepServer(a).routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			// Try the requested address first, then fall back to a random free port
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				a.logger.Warn("listen failed, using a random port", slog.String("addr", addr), slog.String("error", err.Error()))
				ln, err = net.Listen("tcp", "127.0.0.1:0")
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "serving on http://%s (/init, /next, /metrics)\n", ln.Addr())

			go func() {
				<-cmd.Context().Done()
				_ = srv.Close()
			}()
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
