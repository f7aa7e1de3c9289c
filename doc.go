// Package rota assigns weekly raid-team sign-ups to fixed-size rounds.
//
// Every round of an activity has the same team capacity and a fixed role mix:
// a quarter mercy (support), half dps1 and a quarter dps2. Participants
// declare how many slots of each role they can fill; nobody sits in the same
// round twice. Complete rounds that meet the role mix exactly are packed
// first, and the leftover capacity is spread over best-effort remainder rounds.
//
// # Quick Start
//
// Scheduling a roster directly:
//
//	import "github.com/arloliu/rota"
//
//	result, err := rota.BuildSchedule([]rota.Participant{
//	    {ID: "1001", Name: "Ayla", DPS1Capacity: 2, MercyCapacity: 1},
//	    {ID: "1002", Name: "Bram", DPS2Capacity: 2},
//	    // ...
//	}, 8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.CompleteRounds(), "complete rounds")
//
// # Scheduler
//
// The Scheduler adds configuration, roster sources and publishing around the
// engine:
//
//	cfg, err := rota.LoadConfig("rota.yaml")
//	if err != nil { /* handle */ }
//
//	src := source.NewKV(rosterKV)
//	pub := publish.NewKVPublisher(scheduleKV, logger, nil)
//
//	sched, err := rota.NewScheduler(&cfg, src, strategy.NewBatchRemainder(),
//	    rota.WithLogger(logger),
//	    rota.WithPublisher(pub),
//	)
//	result, err := sched.ScheduleNext(ctx, "valtan")
//
// Errors from the Scheduler name the activity they concern and wrap the
// sentinel errors of this package, so errors.Is works on every result.
//
// See the examples/ directory for complete working examples.
package rota
