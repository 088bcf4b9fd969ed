package runner

// resolve scores the live question once the row reaches the player.
// The transition lock keeps it to one resolution per question however
// many frames the row spends inside the collision band.
func (g *Game) resolve() {
	s := &g.session
	if s.NarrationActive || s.Resolving || s.Timeline.Held {
		return
	}
	if !s.Timeline.InBand(g.cfg.BandTop(), g.cfg.BandBottom()) {
		return
	}
	q, ok := s.Current()
	if !ok {
		return
	}

	s.Resolving = true
	if s.Lane == q.CorrectIndex {
		s.Correct++
		s.Feedback = Feedback{Kind: FeedbackCorrect, Text: FeedbackTextCorrect}
		if g.cues != nil {
			g.cues.Correct()
		}
	} else {
		s.Feedback = Feedback{Kind: FeedbackWrong, Text: FeedbackTextWrong}
		if g.cues != nil {
			g.cues.Wrong()
		}
	}
	g.log.Debug("question resolved",
		"index", s.Index,
		"lane", s.Lane,
		"answer", q.CorrectIndex,
		"result", s.Feedback.Kind,
	)

	g.timers.Schedule(timer{kind: timerAdvance, tok: g.current(), due: g.clock + g.cfg.Timing.FeedbackDelay})
}
