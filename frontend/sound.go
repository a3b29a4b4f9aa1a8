package frontend

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	cues "github.com/plus3/shapesort/audio"
	"github.com/plus3/shapesort/sorter"
	"github.com/rs/zerolog"
)

// Sound plays rendered cues through Ebiten's audio context.
type Sound struct {
	ctx     *audio.Context
	bank    *cues.Bank
	players map[sorter.Outcome]*audio.Player
	log     zerolog.Logger
}

// NewSound renders every cue at volume. Only one audio context may exist per
// process.
func NewSound(volume float64, log zerolog.Logger) *Sound {
	return &Sound{
		ctx:     audio.NewContext(int(cues.SampleRate)),
		bank:    cues.NewBank(volume),
		players: make(map[sorter.Outcome]*audio.Player),
		log:     log,
	}
}

// Play restarts the cue for o. Outcomes without a cue do nothing.
func (s *Sound) Play(o sorter.Outcome) {
	player, ok := s.players[o]
	if !ok {
		pcm := s.bank.PCM(o)
		if len(pcm) == 0 {
			return
		}
		player = s.ctx.NewPlayerFromBytes(pcm)
		s.players[o] = player
	}

	if err := player.Rewind(); err != nil {
		s.log.Warn().Err(err).Stringer("outcome", o).Msg("rewind cue")
		return
	}
	player.Play()
}
