package table

const SeatCount = 3

type Seat int

const (
	Left Seat = iota
	Middle
	Right
)

// Seats in the order hands are played.
var Seats = [SeatCount]Seat{Left, Middle, Right}

var seatNames = [SeatCount]string{"left", "middle", "right"}

func (s Seat) String() string {
	if s < 0 || int(s) >= SeatCount {
		return "unknown"
	}
	return seatNames[s]
}

// DealerKey is the dealer's entry in the results map.
const DealerKey = "dealer reg"

func RegKey(s Seat) string {
	return s.String() + " reg"
}

func SplitKey(s Seat) string {
	return s.String() + " split"
}

// Phase of a round; a round walks them in declaration order.
type Phase string

const (
	PhasePregame   Phase = "pregame"
	PhaseStart     Phase = "start"
	PhaseAnte      Phase = "ante"
	PhaseDeal      Phase = "deal"
	PhaseInsurance Phase = "insurance"
	PhaseSplit     Phase = "split"
	PhaseRaise     Phase = "raise"
	PhaseLeft      Phase = "left"
	PhaseMiddle    Phase = "middle"
	PhaseRight     Phase = "right"
	PhaseDealer    Phase = "dealer"
	PhaseEnd       Phase = "end"
	PhasePostgame  Phase = "postgame"
)

// TurnPhase is the player-turn phase belonging to a seat.
func TurnPhase(s Seat) Phase {
	return [SeatCount]Phase{PhaseLeft, PhaseMiddle, PhaseRight}[s]
}
