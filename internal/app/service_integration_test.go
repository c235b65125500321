package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	service "github.com/zentro/shadowscout/internal/app"
	"github.com/zentro/shadowscout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// waitForCount polls until the ranking holds want identities or the deadline
// passes.
func waitForCount(ctx context.Context, svc *service.Service, want int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		entries, err := svc.TopTalents(ctx, want+1)
		if err == nil && len(entries) >= want {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service with full integration", t, func() {
		svc := service.New(
			service.WithWorkerCount(2),
			service.WithQueueSize(1000),
			service.WithDedupeSize(500),
		)
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		Convey("When processing events end-to-end", func() {
			So(svc.Start(ctx), ShouldBeNil)

			// Give the workers time to start
			time.Sleep(100 * time.Millisecond)

			Convey("And enqueueing events for several identities", func() {
				events := []model.ActivityEvent{
					{
						EventID:  "event-1",
						ShadowID: "shadow-1",
						Kind:     model.KindMission,
						Mission:  &model.MissionResult{Category: model.CategoryCodeOps, Score: 85},
					},
					{
						EventID:  "event-2",
						ShadowID: "shadow-2",
						Kind:     model.KindCipher,
						Cipher:   &model.CipherSolve{Difficulty: model.DifficultyHard, Solved: true},
					},
					{
						EventID:  "event-3",
						ShadowID: "shadow-3",
						Kind:     model.KindProject,
						Project: &model.ProjectContribution{
							Role:                  model.RoleLeader,
							TechnicalContribution: 70,
							CollaborationRating:   80,
						},
					},
				}

				for _, e := range events {
					So(svc.Enqueue(ctx, e), ShouldBeTrue)
				}

				Convey("Then every identity ends up in the ranking", func() {
					So(waitForCount(ctx, svc, len(events), 5*time.Second), ShouldBeTrue)

					for _, e := range events {
						entry, err := svc.TalentRank(ctx, e.ShadowID)
						So(err, ShouldBeNil)
						So(entry.ShadowID, ShouldEqual, e.ShadowID)
					}
				})
			})

			Convey("And enqueueing multiple events for one identity", func() {
				for i := 0; i < 4; i++ {
					e := model.ActivityEvent{
						EventID:  fmt.Sprintf("grow-%d", i),
						ShadowID: "shadow-grow",
						Kind:     model.KindMission,
						Mission:  &model.MissionResult{Category: model.CategoryCodeOps, Score: 80},
					}
					So(svc.Enqueue(ctx, e), ShouldBeTrue)
				}

				Convey("Then the journal folds them into one assessment", func() {
					So(waitForCount(ctx, svc, 1, 5*time.Second), ShouldBeTrue)

					// All four missions score 80, so the technical score
					// settles at 80 regardless of arrival order.
					deadline := time.Now().Add(5 * time.Second)
					var report model.InsightReport
					var err error
					for time.Now().Before(deadline) {
						report, err = svc.UserInsights(ctx, "shadow-grow")
						if err == nil && report.SkillBreakdown[model.SkillTechnical] == 80 {
							break
						}
						time.Sleep(10 * time.Millisecond)
					}
					So(err, ShouldBeNil)
					So(report.SkillBreakdown[model.SkillTechnical], ShouldEqual, 80)
				})
			})
		})

		Convey("When the service is stopped", func() {
			So(svc.Start(ctx), ShouldBeNil)

			e := model.ActivityEvent{
				EventID:  "pre-stop",
				ShadowID: "shadow-stop",
				Kind:     model.KindMission,
				Mission:  &model.MissionResult{Category: model.CategoryCodeOps, Score: 50},
			}
			So(svc.Enqueue(ctx, e), ShouldBeTrue)

			svc.Stop()

			Convey("Then buffered events were drained before shutdown", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
			})
		})
	})
}

func TestServiceIntegration_MalformedEvents(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := service.New(service.WithWorkerCount(2))
		defer svc.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When assessing an event with no record for its kind", func() {
			err := svc.Assess(ctx, model.ActivityEvent{
				EventID:  "bad-1",
				ShadowID: "shadow-bad",
				Kind:     model.KindMission,
			})

			Convey("Then it should be rejected as malformed", func() {
				So(err, ShouldEqual, service.ErrMalformedEvent)
			})

			Convey("And the identity should not appear in the ranking", func() {
				_, rankErr := svc.TalentRank(ctx, "shadow-bad")
				So(rankErr, ShouldNotBeNil)
			})
		})

		Convey("When assessing a well-formed event directly", func() {
			err := svc.Assess(ctx, model.ActivityEvent{
				EventID:  "good-1",
				ShadowID: "shadow-good",
				Kind:     model.KindBattle,
				Battle: &model.BattleResult{
					Type:           model.BattleTypeSquad,
					TeamworkRating: 75,
				},
			})

			Convey("Then the assessment should be stored", func() {
				So(err, ShouldBeNil)
				entry, rankErr := svc.TalentRank(ctx, "shadow-good")
				So(rankErr, ShouldBeNil)
				So(entry.ShadowID, ShouldEqual, "shadow-good")
			})
		})
	})
}
