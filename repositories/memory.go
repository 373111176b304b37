package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
)

var ErrReadOnlyTransaction = errors.New("write attempted in a read-only transaction")

type enrollmentKey struct {
	tournamentID int
	playerID     int
}

type memoryState struct {
	lastPlayerID     int
	lastTournamentID int
	lastMatchID      int
	lastSeq          int

	players     map[int]models.Player
	tournaments map[int]models.Tournament
	enrollments map[enrollmentKey]int // value is the enrollment sequence number
	matches     []models.Match
}

func newMemoryState() *memoryState {
	return &memoryState{
		players:     make(map[int]models.Player),
		tournaments: make(map[int]models.Tournament),
		enrollments: make(map[enrollmentKey]int),
	}
}

func (s *memoryState) clone() *memoryState {
	c := *s
	c.players = make(map[int]models.Player, len(s.players))
	for k, v := range s.players {
		c.players[k] = v
	}
	c.tournaments = make(map[int]models.Tournament, len(s.tournaments))
	for k, v := range s.tournaments {
		c.tournaments[k] = v
	}
	c.enrollments = make(map[enrollmentKey]int, len(s.enrollments))
	for k, v := range s.enrollments {
		c.enrollments[k] = v
	}
	c.matches = append([]models.Match(nil), s.matches...)
	return &c
}

// memoryRepository keeps everything in process memory. Writers hold the write
// lock and work on a copy of the state that replaces the original only on
// commit, so readers never see a partial write.
type memoryRepository struct {
	mu    sync.RWMutex
	state *memoryState
	now   func() time.Time
}

// NewMemoryRepository returns an empty in-memory Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{state: newMemoryState(), now: time.Now}
}

func (r *memoryRepository) RunInTx(ctx context.Context, opts TxOptions, fn func(q Queries) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if opts.ReadOnly {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return fn(&memoryQueries{state: r.state, now: r.now, inTx: true, readOnly: true})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	working := r.state.clone()
	if err := fn(&memoryQueries{state: working, now: r.now, inTx: true}); err != nil {
		return err
	}
	r.state = working
	return nil
}

func (r *memoryRepository) Close() error {
	return nil
}

func (r *memoryRepository) read(ctx context.Context, fn func(q Queries) error) error {
	return r.RunInTx(ctx, TxOptions{ReadOnly: true}, fn)
}

func (r *memoryRepository) write(ctx context.Context, fn func(q Queries) error) error {
	return r.RunInTx(ctx, TxOptions{}, fn)
}

func (r *memoryRepository) CreatePlayer(ctx context.Context, name string) (p *models.Player, err error) {
	err = r.write(ctx, func(q Queries) error {
		p, err = q.CreatePlayer(ctx, name)
		return err
	})
	return p, err
}

func (r *memoryRepository) GetPlayer(ctx context.Context, id int) (p *models.Player, err error) {
	err = r.read(ctx, func(q Queries) error {
		p, err = q.GetPlayer(ctx, id)
		return err
	})
	return p, err
}

func (r *memoryRepository) ListPlayers(ctx context.Context) (ps []*models.Player, err error) {
	err = r.read(ctx, func(q Queries) error {
		ps, err = q.ListPlayers(ctx)
		return err
	})
	return ps, err
}

func (r *memoryRepository) CountPlayers(ctx context.Context) (n int, err error) {
	err = r.read(ctx, func(q Queries) error {
		n, err = q.CountPlayers(ctx)
		return err
	})
	return n, err
}

func (r *memoryRepository) CreateTournament(ctx context.Context, name string) (t *models.Tournament, err error) {
	err = r.write(ctx, func(q Queries) error {
		t, err = q.CreateTournament(ctx, name)
		return err
	})
	return t, err
}

func (r *memoryRepository) GetTournament(ctx context.Context, id int) (t *models.Tournament, err error) {
	err = r.read(ctx, func(q Queries) error {
		t, err = q.GetTournament(ctx, id)
		return err
	})
	return t, err
}

func (r *memoryRepository) ListTournaments(ctx context.Context) (ts []*models.Tournament, err error) {
	err = r.read(ctx, func(q Queries) error {
		ts, err = q.ListTournaments(ctx)
		return err
	})
	return ts, err
}

func (r *memoryRepository) LockTournament(ctx context.Context, id int) error {
	return ErrTransactionRequired
}

func (r *memoryRepository) Enroll(ctx context.Context, playerID, tournamentID int) error {
	return r.write(ctx, func(q Queries) error {
		return q.Enroll(ctx, playerID, tournamentID)
	})
}

func (r *memoryRepository) IsEnrolled(ctx context.Context, playerID, tournamentID int) (ok bool, err error) {
	err = r.read(ctx, func(q Queries) error {
		ok, err = q.IsEnrolled(ctx, playerID, tournamentID)
		return err
	})
	return ok, err
}

func (r *memoryRepository) EnrolledPlayers(ctx context.Context, tournamentID int) (ps []*models.Player, err error) {
	err = r.read(ctx, func(q Queries) error {
		ps, err = q.EnrolledPlayers(ctx, tournamentID)
		return err
	})
	return ps, err
}

func (r *memoryRepository) InsertMatch(ctx context.Context, match *models.Match) error {
	return r.write(ctx, func(q Queries) error {
		return q.InsertMatch(ctx, match)
	})
}

func (r *memoryRepository) MatchExists(ctx context.Context, tournamentID, playerA, playerB int) (ok bool, err error) {
	err = r.read(ctx, func(q Queries) error {
		ok, err = q.MatchExists(ctx, tournamentID, playerA, playerB)
		return err
	})
	return ok, err
}

func (r *memoryRepository) MatchesForTournament(ctx context.Context, tournamentID int) (ms []*models.Match, err error) {
	err = r.read(ctx, func(q Queries) error {
		ms, err = q.MatchesForTournament(ctx, tournamentID)
		return err
	})
	return ms, err
}

func (r *memoryRepository) ClearMatches(ctx context.Context, tournamentID *int) error {
	return r.write(ctx, func(q Queries) error { return q.ClearMatches(ctx, tournamentID) })
}

func (r *memoryRepository) ClearEnrollments(ctx context.Context, tournamentID *int) error {
	return r.write(ctx, func(q Queries) error { return q.ClearEnrollments(ctx, tournamentID) })
}

func (r *memoryRepository) ClearPlayers(ctx context.Context) error {
	return r.write(ctx, func(q Queries) error { return q.ClearPlayers(ctx) })
}

func (r *memoryRepository) ClearTournaments(ctx context.Context) error {
	return r.write(ctx, func(q Queries) error { return q.ClearTournaments(ctx) })
}

// memoryQueries operates on one state value while the owning repository
// holds the matching lock.
type memoryQueries struct {
	state    *memoryState
	now      func() time.Time
	inTx     bool
	readOnly bool
}

func (q *memoryQueries) writable() error {
	if q.readOnly {
		return ErrReadOnlyTransaction
	}
	return nil
}

func (q *memoryQueries) CreatePlayer(ctx context.Context, name string) (*models.Player, error) {
	if err := q.writable(); err != nil {
		return nil, err
	}
	q.state.lastPlayerID++
	p := models.Player{ID: q.state.lastPlayerID, Name: name, CreatedAt: q.now()}
	q.state.players[p.ID] = p
	return &p, nil
}

func (q *memoryQueries) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	p, ok := q.state.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return &p, nil
}

func (q *memoryQueries) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players := make([]*models.Player, 0, len(q.state.players))
	for _, p := range q.state.players {
		p := p
		players = append(players, &p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (q *memoryQueries) CountPlayers(ctx context.Context) (int, error) {
	return len(q.state.players), nil
}

func (q *memoryQueries) CreateTournament(ctx context.Context, name string) (*models.Tournament, error) {
	if err := q.writable(); err != nil {
		return nil, err
	}
	q.state.lastTournamentID++
	t := models.Tournament{ID: q.state.lastTournamentID, Name: name, CreatedAt: q.now()}
	q.state.tournaments[t.ID] = t
	return &t, nil
}

func (q *memoryQueries) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	t, ok := q.state.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return &t, nil
}

func (q *memoryQueries) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	tournaments := make([]*models.Tournament, 0, len(q.state.tournaments))
	for _, t := range q.state.tournaments {
		t := t
		tournaments = append(tournaments, &t)
	}
	sort.Slice(tournaments, func(i, j int) bool { return tournaments[i].ID < tournaments[j].ID })
	return tournaments, nil
}

func (q *memoryQueries) LockTournament(ctx context.Context, id int) error {
	if !q.inTx {
		return ErrTransactionRequired
	}
	if err := q.writable(); err != nil {
		return err
	}
	if _, ok := q.state.tournaments[id]; !ok {
		return ErrTournamentNotFound
	}
	return nil
}

func (q *memoryQueries) Enroll(ctx context.Context, playerID, tournamentID int) error {
	if err := q.writable(); err != nil {
		return err
	}
	if _, ok := q.state.players[playerID]; !ok {
		return ErrPlayerNotFound
	}
	if _, ok := q.state.tournaments[tournamentID]; !ok {
		return ErrTournamentNotFound
	}
	key := enrollmentKey{tournamentID: tournamentID, playerID: playerID}
	if _, ok := q.state.enrollments[key]; ok {
		return ErrAlreadyEnrolled
	}
	q.state.lastSeq++
	q.state.enrollments[key] = q.state.lastSeq
	return nil
}

func (q *memoryQueries) IsEnrolled(ctx context.Context, playerID, tournamentID int) (bool, error) {
	_, ok := q.state.enrollments[enrollmentKey{tournamentID: tournamentID, playerID: playerID}]
	return ok, nil
}

func (q *memoryQueries) EnrolledPlayers(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	type enrolled struct {
		seq    int
		player models.Player
	}
	list := make([]enrolled, 0)
	for key, seq := range q.state.enrollments {
		if key.tournamentID != tournamentID {
			continue
		}
		list = append(list, enrolled{seq: seq, player: q.state.players[key.playerID]})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].seq < list[j].seq })

	players := make([]*models.Player, len(list))
	for i := range list {
		p := list[i].player
		players[i] = &p
	}
	return players, nil
}

func (q *memoryQueries) InsertMatch(ctx context.Context, match *models.Match) error {
	if err := q.writable(); err != nil {
		return err
	}
	// same backstops as the postgres constraints
	if _, ok := q.state.tournaments[match.TournamentID]; !ok {
		return ErrTournamentNotFound
	}
	if match.PlayerAID == match.PlayerBID {
		return ErrMatchSelfPlay
	}
	if match.WinnerID != nil && !match.Involves(*match.WinnerID) {
		return ErrMatchWinnerInvalid
	}
	for _, id := range []int{match.PlayerAID, match.PlayerBID} {
		if _, ok := q.state.enrollments[enrollmentKey{tournamentID: match.TournamentID, playerID: id}]; !ok {
			return ErrMatchNotEnrolled
		}
	}
	if exists, _ := q.MatchExists(ctx, match.TournamentID, match.PlayerAID, match.PlayerBID); exists {
		return ErrMatchPairConflict
	}

	q.state.lastMatchID++
	stored := *match
	stored.ID = q.state.lastMatchID
	stored.ReportedAt = q.now()
	if match.WinnerID != nil {
		w := *match.WinnerID
		stored.WinnerID = &w
	}
	q.state.matches = append(q.state.matches, stored)

	match.ID = stored.ID
	match.ReportedAt = stored.ReportedAt
	return nil
}

func (q *memoryQueries) MatchExists(ctx context.Context, tournamentID, playerA, playerB int) (bool, error) {
	low, high := orderedPair(playerA, playerB)
	for i := range q.state.matches {
		m := &q.state.matches[i]
		if m.TournamentID != tournamentID {
			continue
		}
		if l, h := orderedPair(m.PlayerAID, m.PlayerBID); l == low && h == high {
			return true, nil
		}
	}
	return false, nil
}

func (q *memoryQueries) MatchesForTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for _, m := range q.state.matches {
		if m.TournamentID != tournamentID {
			continue
		}
		m := m
		if m.WinnerID != nil {
			w := *m.WinnerID
			m.WinnerID = &w
		}
		matches = append(matches, &m)
	}
	return matches, nil
}

func (q *memoryQueries) ClearMatches(ctx context.Context, tournamentID *int) error {
	if err := q.writable(); err != nil {
		return err
	}
	q.removeMatches(func(m *models.Match) bool {
		return tournamentID == nil || m.TournamentID == *tournamentID
	})
	return nil
}

func (q *memoryQueries) ClearEnrollments(ctx context.Context, tournamentID *int) error {
	if err := q.writable(); err != nil {
		return err
	}
	for key := range q.state.enrollments {
		if tournamentID == nil || key.tournamentID == *tournamentID {
			delete(q.state.enrollments, key)
		}
	}
	// matches depend on enrollments
	return q.ClearMatches(ctx, tournamentID)
}

func (q *memoryQueries) ClearPlayers(ctx context.Context) error {
	if err := q.writable(); err != nil {
		return err
	}
	q.state.players = make(map[int]models.Player)
	q.state.enrollments = make(map[enrollmentKey]int)
	q.state.matches = nil
	return nil
}

func (q *memoryQueries) ClearTournaments(ctx context.Context) error {
	if err := q.writable(); err != nil {
		return err
	}
	q.state.tournaments = make(map[int]models.Tournament)
	q.state.enrollments = make(map[enrollmentKey]int)
	q.state.matches = nil
	return nil
}

func (q *memoryQueries) removeMatches(drop func(m *models.Match) bool) {
	kept := q.state.matches[:0]
	for i := range q.state.matches {
		if !drop(&q.state.matches[i]) {
			kept = append(kept, q.state.matches[i])
		}
	}
	q.state.matches = kept
}
