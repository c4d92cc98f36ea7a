package model_test

import (
	"strconv"
	"testing"

	model "github.com/okian/laddersim/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParticipantRecord(t *testing.T) {
	Convey("Given a fresh participant", t, func() {
		p := model.Participant{ID: "alice", Rating: 1000}

		Convey("When recording a win", func() {
			p.Record("bob", model.ScoreWin, 16, 1)

			Convey("Then rating, streak and counters advance", func() {
				So(p.Rating, ShouldEqual, 1016.0)
				So(p.WinStreak, ShouldEqual, 1)
				So(p.Wins, ShouldEqual, 1)
				So(p.MatchesPlayed, ShouldEqual, 1)
				So(p.LastActiveTick, ShouldEqual, 1)
			})

			Convey("And the history holds the contest", func() {
				So(len(p.History), ShouldEqual, 1)
				So(p.History[0].OpponentID, ShouldEqual, "bob")
				So(p.History[0].Score, ShouldEqual, model.ScoreWin)
				So(p.History[0].Delta, ShouldEqual, 16.0)
			})
		})

		Convey("When a loss follows a winning streak", func() {
			p.Record("bob", model.ScoreWin, 16, 1)
			p.Record("bob", model.ScoreWin, 16, 2)
			p.Record("bob", model.ScoreLoss, -16, 3)

			Convey("Then the streak resets and the loss is counted", func() {
				So(p.WinStreak, ShouldEqual, 0)
				So(p.Wins, ShouldEqual, 2)
				So(p.Losses, ShouldEqual, 1)
				So(p.MatchesPlayed, ShouldEqual, 3)
			})
		})

		Convey("When a draw follows a winning streak", func() {
			p.Record("bob", model.ScoreWin, 16, 1)
			p.Record("bob", model.ScoreDraw, 0, 2)

			Convey("Then the streak resets and the draw is counted", func() {
				So(p.WinStreak, ShouldEqual, 0)
				So(p.Draws, ShouldEqual, 1)
			})
		})

		Convey("When recording many contests", func() {
			for tick := int64(1); tick <= 100; tick++ {
				p.Record("opp-"+strconv.FormatInt(tick, 10), model.ScoreWin, 1, tick)
			}

			Convey("Then the history stays bounded and keeps the newest entries", func() {
				So(len(p.History), ShouldEqual, 64)
				So(p.History[len(p.History)-1].Tick, ShouldEqual, 100)
				So(p.History[0].Tick, ShouldEqual, 37)
				So(p.MatchesPlayed, ShouldEqual, 100)
			})
		})
	})
}

func TestParticipantCopy(t *testing.T) {
	Convey("Given a participant with history", t, func() {
		p := model.Participant{ID: "alice", Rating: 1000}
		p.Record("bob", model.ScoreWin, 16, 1)

		Convey("When copying it", func() {
			c := p.Copy()

			Convey("Then mutating the copy never touches the original", func() {
				c.Rating = 1
				c.History[0].Delta = 999

				So(p.Rating, ShouldEqual, 1016.0)
				So(p.History[0].Delta, ShouldEqual, 16.0)
			})
		})

		Convey("When copying a participant without history", func() {
			empty := model.Participant{ID: "bob", Rating: 1000}
			c := empty.Copy()

			Convey("Then the copy carries no history", func() {
				So(c.History, ShouldBeNil)
				So(c.Rating, ShouldEqual, 1000.0)
			})
		})
	})
}
