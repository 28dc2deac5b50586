package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"CasinoBlackjack/internal/game/table"
)

const (
	// MaxRecords is one saved player per seat.
	MaxRecords   = table.SeatCount
	StartingBank = 50000
)

var (
	ErrNoSavedGame   = errors.New("roster: no saved game")
	ErrCorrupt       = errors.New("roster: saved game is corrupt")
	ErrRosterFull    = errors.New("roster: every seat already has a saved player")
	ErrDuplicateName = errors.New("roster: name already taken")
	ErrUnknownPlayer = errors.New("roster: no such player")
	ErrInvalidName   = errors.New("roster: invalid name")
)

// Record is the persisted state of one player between sessions.
type Record struct {
	Name  string      `json:"name"`
	Bank  int         `json:"bank"`
	Skill table.Skill `json:"skill"`
}

// CreateRequest 新建玩家
type CreateRequest struct {
	Names []string `json:"names" binding:"required"`
}

type ListResponse struct {
	Players []Record `json:"players"`
}

// ParseLine reads "name, bank, skill".
func ParseLine(line string) (Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return Record{}, fmt.Errorf("%w: %q has %d fields", ErrCorrupt, line, len(fields))
	}
	name := strings.TrimSpace(fields[0])
	if name == "" {
		return Record{}, fmt.Errorf("%w: empty name in %q", ErrCorrupt, line)
	}
	bank, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil || bank < 0 {
		return Record{}, fmt.Errorf("%w: bad bank in %q", ErrCorrupt, line)
	}
	skill, err := table.ParseSkill(strings.TrimSpace(fields[2]))
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return Record{Name: name, Bank: bank, Skill: skill}, nil
}

func (r Record) Line() string {
	return r.Name + ", " + strconv.Itoa(r.Bank) + ", " + string(r.Skill)
}

// Decode reads up to MaxRecords lines. One bad line discards the whole save.
func Decode(rd io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(rd)
	out := make([]Record, 0, MaxRecords)
	for sc.Scan() && len(out) < MaxRecords {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoSavedGame
	}
	return out, nil
}

func Encode(w io.Writer, recs []Record) error {
	for _, r := range recs {
		if _, err := io.WriteString(w, r.Line()+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// decodeLines is Decode for stores that hand back one line per element.
func decodeLines(lines []string) ([]Record, error) {
	return Decode(strings.NewReader(strings.Join(lines, "\n")))
}
