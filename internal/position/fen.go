// Package position converts between chess matches and Forsyth-Edwards
// Notation.
package position

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	"github.com/benbeisheim/chessrules/internal/chess"
)

// StartPos is the usual opening position.
const StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN")

const (
	whiteName = "White"
	blackName = "Black"
)

var kindLetters = map[chess.Kind]byte{
	chess.Pawn:   'p',
	chess.Knight: 'n',
	chess.Bishop: 'b',
	chess.Rook:   'r',
	chess.Queen:  'q',
	chess.King:   'k',
}

// FromFEN builds a two-player match from a FEN record. White is added first
// and faces up the board. The castling field decides which kings and corner
// rooks count as unmoved; pawns off their starting rank count as moved. The
// en passant field is accepted and ignored.
func FromFEN(fen string, opts chess.Options) (*chess.Match, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: want 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	if err := checkPlacement(fields[0]); err != nil {
		return nil, err
	}
	if fields[1] != "w" && fields[1] != "b" {
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	rights, err := parseCastling(fields[2])
	if err != nil {
		return nil, err
	}
	// dragontoothmg wants both move counters
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	}

	board, err := parse(strings.Join(fields, " "))
	if err != nil {
		return nil, err
	}

	m := chess.NewMatch(opts)
	white, err := m.AddPlayer(whiteName, 1)
	if err != nil {
		return nil, err
	}
	black, err := m.AddPlayer(blackName, -1)
	if err != nil {
		return nil, err
	}
	sides := []struct {
		owner chess.PlayerID
		bb    dragontoothmg.Bitboards
		queen bool
		king  bool
		name  string
	}{
		{white, board.White, rights['Q'], rights['K'], "white"},
		{black, board.Black, rights['q'], rights['k'], "black"},
	}
	for _, side := range sides {
		if n := bits.OnesCount64(side.bb.Kings); n != 1 {
			return nil, fmt.Errorf("%w: %s has %d kings", ErrInvalidFEN, side.name, n)
		}
		player, _ := m.Player(side.owner)
		if err := place(m, player, side.bb, side.queen, side.king); err != nil {
			return nil, err
		}
	}
	if !board.Wtomove {
		if err := m.SetTurn(black); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// parse hands the record to dragontoothmg, which panics on malformed input.
func parse(fen string) (board dragontoothmg.Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()
	return dragontoothmg.ParseFen(fen), nil
}

func place(m *chess.Match, player *chess.Player, bb dragontoothmg.Bitboards, queenSide, kingSide bool) error {
	home := 0
	if player.Direction() < 0 {
		home = chess.Size - 1
	}
	pieces := []struct {
		kind chess.Kind
		bits uint64
	}{
		{chess.King, bb.Kings},
		{chess.Queen, bb.Queens},
		{chess.Rook, bb.Rooks},
		{chess.Bishop, bb.Bishops},
		{chess.Knight, bb.Knights},
		{chess.Pawn, bb.Pawns},
	}
	for _, group := range pieces {
		for x := group.bits; x != 0; x &= x - 1 {
			sq := squareOf(bits.TrailingZeros64(x))
			id, err := m.CreatePiece(group.kind, player.ID(), sq)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidFEN, err)
			}
			if moved(group.kind, sq, home, player.Direction(), queenSide, kingSide) {
				if err := m.SetMoved(id, true); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func moved(kind chess.Kind, sq chess.Square, home, direction int, queenSide, kingSide bool) bool {
	switch kind {
	case chess.Pawn:
		return sq.Rank != home+direction
	case chess.King:
		return !(queenSide || kingSide) || sq != (chess.Square{File: 4, Rank: home})
	case chess.Rook:
		switch sq {
		case chess.Square{File: 0, Rank: home}:
			return !queenSide
		case chess.Square{File: chess.Size - 1, Rank: home}:
			return !kingSide
		}
		return true
	}
	return false
}

// squareOf maps a little-endian rank-file index, a1 = 0, to a square.
func squareOf(i int) chess.Square {
	return chess.Square{File: i % chess.Size, Rank: i / chess.Size}
}

func checkPlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.Size {
		return fmt.Errorf("%w: want %d ranks, got %d", ErrInvalidFEN, chess.Size, len(ranks))
	}
	for i, rank := range ranks {
		width := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				width += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				width++
			default:
				return fmt.Errorf("%w: unexpected %q in rank %d", ErrInvalidFEN, c, chess.Size-i)
			}
		}
		if width != chess.Size {
			return fmt.Errorf("%w: rank %d spans %d files", ErrInvalidFEN, chess.Size-i, width)
		}
	}
	return nil
}

func parseCastling(field string) (map[rune]bool, error) {
	rights := make(map[rune]bool)
	if field == "-" {
		return rights, nil
	}
	for _, c := range field {
		if !strings.ContainsRune("KQkq", c) || rights[c] {
			return nil, fmt.Errorf("%w: castling field %q", ErrInvalidFEN, field)
		}
		rights[c] = true
	}
	return rights, nil
}

// ToFEN writes the match as a FEN record. The first player facing up is
// white. Castling rights are read off unmoved kings and corner rooks, the
// en passant field is always "-" and the move counters start fresh.
func ToFEN(m *chess.Match) string {
	var sb strings.Builder
	for rank := chess.Size - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < chess.Size; file++ {
			p, ok := m.PieceAt(chess.Square{File: file, Rank: rank})
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter := kindLetters[p.Kind]
			if isWhite(m, p.Owner) {
				letter -= 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	side := "b"
	if isWhite(m, m.Turn()) {
		side = "w"
	}
	fmt.Fprintf(&sb, " %s %s - 0 1", side, castling(m))
	return sb.String()
}

func isWhite(m *chess.Match, id chess.PlayerID) bool {
	p, ok := m.Player(id)
	return ok && p.Direction() > 0
}

func castling(m *chess.Match) string {
	var out []byte
	for _, upper := range []bool{true, false} {
		for _, id := range m.Players() {
			player, _ := m.Player(id)
			if (player.Direction() > 0) != upper {
				continue
			}
			home := 0
			if !upper {
				home = chess.Size - 1
			}
			king, ok := m.Piece(player.King())
			if !ok || !king.OnBoard || king.HasMoved || king.Pos != (chess.Square{File: 4, Rank: home}) {
				continue
			}
			for _, corner := range []struct {
				file   int
				letter byte
			}{{chess.Size - 1, 'k'}, {0, 'q'}} {
				rook, ok := m.PieceAt(chess.Square{File: corner.file, Rank: home})
				if !ok || rook.Kind != chess.Rook || rook.Owner != id || rook.HasMoved {
					continue
				}
				letter := corner.letter
				if upper {
					letter -= 'a' - 'A'
				}
				out = append(out, letter)
			}
		}
	}
	if len(out) == 0 {
		return "-"
	}
	return string(out)
}
