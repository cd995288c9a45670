package portal

import (
	"time"
)

func (p *Portal) riderAndStage(stageID, riderID int) (*Stage, error) {
	if _, err := p.Rider(riderID); err != nil {
		return nil, err
	}
	return p.Stage(stageID)
}

func (p *Portal) RegisterRiderResultsInStage(stageID, riderID int, checkpoints ...time.Time) error {
	stage, err := p.riderAndStage(stageID, riderID)
	if err != nil {
		return err
	}
	if err := stage.RegisterResults(riderID, checkpoints); err != nil {
		return err
	}
	p.log.Debug().Int("stage", stageID).Int("rider", riderID).Int("checkpoints", len(checkpoints)).Msg("results registered")
	return nil
}

// RiderResultsInStage returns the intermediate checkpoints followed by the elapsed
// time, or an empty slice when the rider has no results in the stage.
func (p *Portal) RiderResultsInStage(stageID, riderID int) ([]time.Time, error) {
	stage, err := p.riderAndStage(stageID, riderID)
	if err != nil {
		return nil, err
	}
	return stage.RiderResults(riderID), nil
}

// RiderAdjustedElapsedTimeInStage reports false when the rider has no results in the
// stage.
func (p *Portal) RiderAdjustedElapsedTimeInStage(stageID, riderID int) (time.Duration, bool, error) {
	stage, err := p.riderAndStage(stageID, riderID)
	if err != nil {
		return 0, false, err
	}
	elapsed, ok := stage.AdjustedElapsed(riderID)
	return elapsed, ok, nil
}

func (p *Portal) DeleteRiderResultsInStage(stageID, riderID int) error {
	stage, err := p.riderAndStage(stageID, riderID)
	if err != nil {
		return err
	}
	stage.DeleteResults(riderID)
	p.log.Debug().Int("stage", stageID).Int("rider", riderID).Msg("results deleted")
	return nil
}

func (p *Portal) RidersRankInStage(stageID int) ([]int, error) {
	stage, err := p.Stage(stageID)
	if err != nil {
		return nil, err
	}
	return stage.RidersRank(), nil
}

func (p *Portal) RankedAdjustedElapsedTimesInStage(stageID int) ([]time.Duration, error) {
	stage, err := p.Stage(stageID)
	if err != nil {
		return nil, err
	}
	return stage.RankedAdjustedTimes(), nil
}

func (p *Portal) RidersPointsInStage(stageID int) ([]int, error) {
	stage, err := p.Stage(stageID)
	if err != nil {
		return nil, err
	}
	return stage.RidersPoints(), nil
}

func (p *Portal) RidersMountainPointsInStage(stageID int) ([]int, error) {
	stage, err := p.Stage(stageID)
	if err != nil {
		return nil, err
	}
	return stage.RidersMountainPoints(), nil
}

func (p *Portal) GeneralClassificationTimesInRace(raceID int) ([]time.Duration, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return nil, err
	}
	return race.GeneralClassificationTimes(), nil
}

func (p *Portal) RidersPointsInRace(raceID int) ([]int, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return nil, err
	}
	return race.RidersPoints(), nil
}

func (p *Portal) RidersMountainPointsInRace(raceID int) ([]int, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return nil, err
	}
	return race.RidersMountainPoints(), nil
}

func (p *Portal) RidersGeneralClassificationRank(raceID int) ([]int, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return nil, err
	}
	return race.RidersGeneralClassificationRank(), nil
}

func (p *Portal) RidersPointClassificationRank(raceID int) ([]int, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return nil, err
	}
	return race.RidersPointClassificationRank(), nil
}

func (p *Portal) RidersMountainPointClassificationRank(raceID int) ([]int, error) {
	race, err := p.Race(raceID)
	if err != nil {
		return nil, err
	}
	return race.RidersMountainPointClassificationRank(), nil
}
