// Package engine assembles every other internal package into the single
// resolved view of a competition: CompState.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cliffdoyle/srcomp-engine/internal/compio"
	"github.com/cliffdoyle/srcomp-engine/internal/gitstate"
	"github.com/cliffdoyle/srcomp-engine/internal/knockout"
	"github.com/cliffdoyle/srcomp-engine/internal/layout"
	"github.com/cliffdoyle/srcomp-engine/internal/matchops"
	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
	"github.com/cliffdoyle/srcomp-engine/internal/schedule"
	"github.com/cliffdoyle/srcomp-engine/internal/scores"
	"github.com/cliffdoyle/srcomp-engine/internal/teams"
	"github.com/cliffdoyle/srcomp-engine/internal/tiebreaker"
	"github.com/cliffdoyle/srcomp-engine/internal/winners"
)

// CompState is the fully-resolved view of one competition state
// directory: every exported field is read-only once Load returns, so a
// *CompState may be shared freely between goroutines.
type CompState struct {
	Dir              string
	GitState         gitstate.State
	NumTeamsPerArena int
	Arenas           []matchperiod.ArenaName
	Teams            map[matchperiod.TLA]teams.Team

	Schedule       *schedule.MatchSchedule
	LeagueScores   *scores.LeagueScores
	KnockoutScores *scores.KnockoutScores
	Awards         winners.Awards
	Operations     *matchops.Operations

	// Layout is nil if layout.yaml/shepherding.yaml aren't both present.
	// LayoutError records a structural problem Build found in them (an
	// InvalidRegionError, LayoutTeamsError or ShepherdingAreasError); it is
	// surfaced as a validate.Finding rather than failing Load, since an
	// inconsistent layout doesn't stop the competition from running.
	Layout      *layout.Layout
	LayoutError error
}

// Load reads every document under dir and builds a CompState. factory is
// the host-supplied scorer plug-in; a fresh factory must be passed for
// every Load call, never cached behind a package-level variable.
func Load(dir string, factory scores.Factory) (*CompState, error) {
	gs := gitstate.Resolve(dir)

	arenasDoc, err := compio.LoadArenas(filepath.Join(dir, "arenas.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading competition state: %w", err)
	}
	numTeamsPerArena := len(arenasDoc.Corners)

	var arenaNames []matchperiod.ArenaName
	for name := range arenasDoc.Arenas {
		arenaNames = append(arenaNames, matchperiod.ArenaName(name))
	}
	sort.Slice(arenaNames, func(i, j int) bool { return arenaNames[i] < arenaNames[j] })

	teamsDoc, err := compio.LoadTeams(filepath.Join(dir, "teams.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading competition state: %w", err)
	}
	roster := make(map[matchperiod.TLA]teams.Team, len(teamsDoc))
	for tla, t := range teamsDoc {
		team := teams.Team{TLA: matchperiod.TLA(tla), Name: t.Name, Rookie: t.Rookie}
		if t.DroppedOutAfter != nil {
			n := matchperiod.MatchNumber(*t.DroppedOutAfter)
			team.DroppedOutAfter = &n
		}
		roster[matchperiod.TLA(tla)] = team
	}

	plan, err := buildPlan(dir)
	if err != nil {
		return nil, fmt.Errorf("loading competition state: %w", err)
	}

	ms, err := schedule.NewMatchSchedule(plan, roster)
	if err != nil {
		return nil, fmt.Errorf("building match schedule: %w", err)
	}

	allRaws, err := loadRawScores(dir)
	if err != nil {
		return nil, fmt.Errorf("loading scores: %w", err)
	}

	var leagueRaws, knockoutRaws []scores.RawScore
	for _, raw := range allRaws {
		if raw.MatchNumber < matchperiod.MatchNumber(ms.NLeagueMatches) {
			leagueRaws = append(leagueRaws, raw)
		} else {
			knockoutRaws = append(knockoutRaws, raw)
		}
	}

	roster2 := make([]matchperiod.TLA, 0, len(roster))
	for tla := range roster {
		roster2 = append(roster2, tla)
	}
	leagueScores, err := scores.NewLeagueScores(roster2, leagueRaws, factory, numTeamsPerArena, nil)
	if err != nil {
		return nil, fmt.Errorf("scoring league: %w", err)
	}

	rawsByID := make(map[matchperiod.MatchId]scores.RawScore, len(knockoutRaws))
	for _, raw := range knockoutRaws {
		rawsByID[matchperiod.MatchId{Arena: raw.ArenaID, Num: raw.MatchNumber}] = raw
	}
	resolveCache := make(map[matchperiod.MatchId]map[matchperiod.TLA]int)
	resolvedLookup := func(id matchperiod.MatchId) (map[matchperiod.TLA]int, bool) {
		if cached, ok := resolveCache[id]; ok {
			return cached, true
		}
		raw, ok := rawsByID[id]
		if !ok {
			return nil, false
		}
		resolved, err := scores.ResolveMatch(raw, factory, numTeamsPerArena, leagueScores.Positions)
		if err != nil {
			return nil, false
		}
		resolveCache[id] = resolved
		return resolved, true
	}

	knockoutPeriod, err := buildKnockoutPeriod(dir, ms, leagueScores, roster, arenaNames, numTeamsPerArena, plan.SlotLengths.Total, plan.Delays, resolvedLookup)
	if err != nil {
		return nil, fmt.Errorf("building knockout schedule: %w", err)
	}
	ms.AppendPeriod(knockoutPeriod)

	finalMatch, hasFinal := ms.FinalMatch()
	knockoutFinal := finalMatch
	var finalGroups [][]matchperiod.TLA
	if hasFinal {
		if raw, ok := rawsByID[matchperiod.MatchId{Arena: finalMatch.Arena, Num: finalMatch.Num}]; ok {
			finalGroups, _ = scores.ComputeGamePositions(raw, factory, numTeamsPerArena)
		}
	}

	if tied, isTie := tiebreaker.Detect(finalGroups); isTie && hasFinal {
		period := tiebreaker.Build(tied, leagueScores.Positions, finalMatch.Arena, ms.NextMatchNumber(), numTeamsPerArena, finalMatch.EndTime, plan.SlotLengths.Total)
		ms.AppendPeriod(period)
	}

	finalMatch, _ = ms.FinalMatch()
	var effectiveFinalGroups [][]matchperiod.TLA
	if raw, ok := rawsByID[matchperiod.MatchId{Arena: finalMatch.Arena, Num: finalMatch.Num}]; ok {
		effectiveFinalGroups, _ = scores.ComputeGamePositions(raw, factory, numTeamsPerArena)
	}

	knockoutScores, err := scores.NewKnockoutScores(knockoutRaws, factory, numTeamsPerArena, leagueScores.Positions, allKnockoutIDsExceptFinal(knockoutRaws, knockoutFinal, finalMatch))
	if err != nil {
		return nil, fmt.Errorf("scoring knockout: %w", err)
	}

	overrides := map[string][]matchperiod.TLA{}
	if doc, err := compio.LoadAwards(filepath.Join(dir, "awards.yaml")); err == nil {
		for name, v := range doc {
			var tlas []matchperiod.TLA
			for _, s := range compio.AwardTLAs(v) {
				tlas = append(tlas, matchperiod.TLA(s))
			}
			overrides[name] = tlas
		}
	}

	awards := winners.Compute(winners.Input{
		FinalMatch:                  finalMatch,
		FinalGamePositions:          effectiveFinalGroups,
		PrecedingFinalGamePositions: finalGroups,
		Teams:                       roster,
		LeagueRanks:                 leagueScores.RankLeague(),
		Overrides:                   overrides,
	})

	var compLayout *layout.Layout
	var layoutErr error
	if layoutDoc, err := compio.LoadLayout(filepath.Join(dir, "layout.yaml")); err == nil {
		if shepherdingDoc, err := compio.LoadShepherding(filepath.Join(dir, "shepherding.yaml")); err == nil {
			compLayout, layoutErr = layout.Build(layoutDoc, shepherdingDoc, roster)
		}
	}

	var ops *matchops.Operations
	if opsDoc, err := compio.LoadOperations(filepath.Join(dir, "operations.yaml")); err == nil {
		var released *matchops.ReleasedMatch
		if opsDoc.Operations.ReleasedMatch != nil {
			released = &matchops.ReleasedMatch{
				Number: matchperiod.MatchNumber(opsDoc.Operations.ReleasedMatch.Number),
				Time:   opsDoc.Operations.ReleasedMatch.Time,
			}
		}
		ops, err = matchops.New(ms,
			time.Duration(opsDoc.Operations.ReleaseThreshold)*time.Second,
			time.Duration(opsDoc.Operations.ResetDuration)*time.Second,
			released,
		)
		if err != nil {
			return nil, fmt.Errorf("building operations view: %w", err)
		}
	}

	return &CompState{
		Dir:              dir,
		GitState:         gs,
		NumTeamsPerArena: numTeamsPerArena,
		Arenas:           arenaNames,
		Teams:            roster,
		Schedule:         ms,
		LeagueScores:     leagueScores,
		KnockoutScores:   knockoutScores,
		Awards:           awards,
		Operations:       ops,
		Layout:           compLayout,
		LayoutError:      layoutErr,
	}, nil
}

// allKnockoutIDsExceptFinal marks every scored knockout match as using
// resolved ranking except the finals given (the knockout final and, if one
// was injected, the tiebreaker), which permit ties.
func allKnockoutIDsExceptFinal(raws []scores.RawScore, finals ...*matchperiod.Match) map[matchperiod.MatchId]bool {
	out := make(map[matchperiod.MatchId]bool, len(raws))
	for _, raw := range raws {
		id := matchperiod.MatchId{Arena: raw.ArenaID, Num: raw.MatchNumber}
		isFinal := false
		for _, final := range finals {
			if final != nil && raw.ArenaID == final.Arena && raw.MatchNumber == final.Num {
				isFinal = true
			}
		}
		if isFinal {
			continue
		}
		out[id] = true
	}
	return out
}

func buildPlan(dir string) (schedule.Plan, error) {
	doc, err := compio.LoadSchedule(filepath.Join(dir, "schedule.yaml"))
	if err != nil {
		return schedule.Plan{}, err
	}
	leagueDoc, err := compio.LoadLeague(filepath.Join(dir, "league.yaml"))
	if err != nil {
		return schedule.Plan{}, err
	}

	sec := func(n int) time.Duration { return time.Duration(n) * time.Second }

	plan := schedule.Plan{
		SlotLengths: schedule.SlotLengths{
			Pre:   sec(doc.MatchSlotLengths.Pre),
			Match: sec(doc.MatchSlotLengths.Match),
			Post:  sec(doc.MatchSlotLengths.Post),
			Total: sec(doc.MatchSlotLengths.Total),
		},
		Staging: schedule.StagingConfig{
			OpensOffset:       sec(doc.Staging.Opens),
			ClosesOffset:      sec(doc.Staging.Closes),
			SignalTeamsOffset: sec(doc.Staging.SignalTeams),
		},
	}
	if len(doc.Staging.SignalShepherds) > 0 {
		plan.Staging.SignalShepherdOffsets = make(map[string]time.Duration, len(doc.Staging.SignalShepherds))
		for name, s := range doc.Staging.SignalShepherds {
			plan.Staging.SignalShepherdOffsets[name] = sec(s)
		}
	}
	for _, d := range doc.Delays {
		plan.Delays = append(plan.Delays, matchperiod.Delay{Time: d.Time, Duration: sec(d.Delay)})
	}
	for _, p := range doc.MatchPeriods.League {
		plan.LeaguePeriods = append(plan.LeaguePeriods, schedule.PeriodConfig{
			Description: p.Description, StartTime: p.StartTime, EndTime: p.EndTime, MaxEndTime: p.MaxEndTime,
		})
	}
	for _, es := range doc.League.ExtraSpacing {
		plan.ExtraSpacings = append(plan.ExtraSpacings, schedule.ExtraSpacing{
			MatchNumbers: es.MatchNumbers, Duration: sec(es.Duration),
		})
	}

	var nums []int
	for n := range leagueDoc.Matches {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	for _, n := range nums {
		arenaTeams := leagueDoc.Matches[n]
		var arenaNames []string
		for a := range arenaTeams {
			arenaNames = append(arenaNames, a)
		}
		sort.Strings(arenaNames)
		for _, a := range arenaNames {
			tlas := make([]matchperiod.TLA, len(arenaTeams[a]))
			for i, tla := range arenaTeams[a] {
				tlas[i] = matchperiod.TLA(tla)
			}
			plan.LeagueEntries = append(plan.LeagueEntries, schedule.PlannedEntry{
				Num: matchperiod.MatchNumber(n), Arena: matchperiod.ArenaName(a), Teams: tlas,
			})
		}
	}

	return plan, nil
}

func buildKnockoutPeriod(
	dir string,
	ms *schedule.MatchSchedule,
	leagueScores *scores.LeagueScores,
	roster map[matchperiod.TLA]teams.Team,
	arenas []matchperiod.ArenaName,
	numTeamsPerArena int,
	matchDuration time.Duration,
	delays []matchperiod.Delay,
	resolved knockout.ResolvedLookup,
) (matchperiod.MatchPeriod, error) {
	path := filepath.Join(dir, "knockout.yaml")
	isStatic, err := isStaticKnockout(path)
	if err != nil {
		return matchperiod.MatchPeriod{}, err
	}

	startNum := ms.NextMatchNumber()

	if isStatic {
		doc, err := compio.LoadStaticKnockout(path)
		if err != nil {
			return matchperiod.MatchPeriod{}, err
		}
		cfg := staticConfigFromDoc(doc)
		seeds := seedOrder(ms, leagueScores, roster)
		return knockout.BuildStatic(cfg, seeds, startNum, matchDuration, resolved)
	}

	doc, err := compio.LoadKnockout(path)
	if err != nil {
		return matchperiod.MatchPeriod{}, err
	}
	cfg := knockout.AutomaticConfig{
		RoundSpacing: time.Duration(doc.RoundSpacing) * time.Second,
		FinalDelay:   time.Duration(doc.FinalDelay) * time.Second,
	}
	if doc.Arity != nil {
		cfg.Arity = *doc.Arity
	}
	cfg.SingleArenaRounds = doc.SingleArena.Rounds
	for _, a := range doc.SingleArena.Arenas {
		cfg.SingleArenaArenas = append(cfg.SingleArenaArenas, matchperiod.ArenaName(a))
	}

	periodCfg := matchperiod.MatchPeriod{}
	scheduleDoc, err := compio.LoadSchedule(filepath.Join(dir, "schedule.yaml"))
	if err == nil && len(scheduleDoc.MatchPeriods.Knockout) > 0 {
		kp := scheduleDoc.MatchPeriods.Knockout[0]
		periodCfg.StartTime, periodCfg.EndTime, periodCfg.MaxEndTime, periodCfg.Description =
			kp.StartTime, kp.EndTime, kp.MaxEndTime, kp.Description
	}

	seeds := seedOrder(ms, leagueScores, roster)
	return knockout.BuildAutomatic(periodCfg, delays, seeds, cfg, arenas, numTeamsPerArena, startNum, matchDuration, resolved)
}

func seedOrder(ms *schedule.MatchSchedule, ls *scores.LeagueScores, roster map[matchperiod.TLA]teams.Team) []matchperiod.TLA {
	firstKnockoutNum := ms.NextMatchNumber()

	scoredNums := map[matchperiod.MatchNumber]bool{}
	for id := range ls.GamePoints {
		scoredNums[id.Num] = true
	}
	complete := len(scoredNums) >= ms.NLeagueMatches

	var seeds []matchperiod.TLA
	for _, tla := range ls.Positions.Keys() {
		if team, ok := roster[tla]; !ok || team.IsStillAround(firstKnockoutNum) {
			seeds = append(seeds, tla)
		}
	}
	if !complete {
		for i := range seeds {
			seeds[i] = matchperiod.Unknowable
		}
	}
	return seeds
}

func staticConfigFromDoc(doc compio.StaticKnockoutDoc) knockout.StaticConfig {
	var roundNums []int
	for r := range doc.Matches {
		n, _ := atoiSafe(r)
		roundNums = append(roundNums, n)
	}
	sort.Ints(roundNums)

	cfg := knockout.StaticConfig{TeamsPerArena: doc.TeamsPerArena}
	for _, rn := range roundNums {
		roundKey := itoaSafe(rn)
		matchesMap := doc.Matches[roundKey]

		var matchNums []int
		for m := range matchesMap {
			n, _ := atoiSafe(m)
			matchNums = append(matchNums, n)
		}
		sort.Ints(matchNums)

		var round knockout.StaticRoundConfig
		for _, mn := range matchNums {
			md := matchesMap[itoaSafe(mn)]
			round.Matches = append(round.Matches, knockout.StaticMatchConfig{
				Arena:       matchperiod.ArenaName(md.Arena),
				DisplayName: md.DisplayName,
				StartTime:   md.StartTime,
				Teams:       md.Teams,
			})
		}
		cfg.Rounds = append(cfg.Rounds, round)
	}
	return cfg
}

func isStaticKnockout(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	var probe map[string]any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	_, hasTeamsPerArena := probe["teams_per_arena"]
	return hasTeamsPerArena, nil
}

func loadRawScores(dir string) ([]scores.RawScore, error) {
	root := filepath.Join(dir, "scores")
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var raws []scores.RawScore
	for _, arenaEntry := range entries {
		if !arenaEntry.IsDir() {
			continue
		}
		arenaDir := filepath.Join(root, arenaEntry.Name())
		files, err := os.ReadDir(arenaDir)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != ".yaml" {
				continue
			}
			doc, err := compio.LoadScore(filepath.Join(arenaDir, f.Name()))
			if err != nil {
				return nil, err
			}
			teamsData := make(map[matchperiod.TLA]map[string]any, len(doc.Teams))
			for tla, data := range doc.Teams {
				teamsData[matchperiod.TLA(tla)] = data
			}
			raws = append(raws, scores.RawScore{
				ArenaID:     matchperiod.ArenaName(doc.ArenaID),
				MatchNumber: matchperiod.MatchNumber(doc.MatchNumber),
				TeamsData:   teamsData,
				ArenaData:   doc.ArenaZones,
			})
		}
	}
	return raws, nil
}

func atoiSafe(s string) (int, error) {
	return strconv.Atoi(s)
}

func itoaSafe(n int) string {
	return strconv.Itoa(n)
}
