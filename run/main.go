package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/maseology/hsami"
	"github.com/maseology/mmio"
)

type project struct {
	Basin       hsami.Basin
	Par         hsami.Parameter
	Mod         *hsami.Modules
	StepsPerDay int
}

func main() {
	prjfp := flag.String("prj", "project.json", "project file: basin, parameters, module selection")
	frcfp := flag.String("frc", "forcing.gob", "forcing series")
	outfp := flag.String("o", "hydrograph.csv", "output hydrograph")
	flag.Parse()

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Print("\nRun complete")

	f, err := os.Open(*prjfp)
	if err != nil {
		log.Fatalf(" project load: %v", err)
	}
	var prj project
	if err := json.NewDecoder(f).Decode(&prj); err != nil {
		log.Fatalf(" project load: %v", err)
	}
	f.Close()
	if prj.Mod == nil {
		m := hsami.Defaults()
		prj.Mod = &m
	}
	if prj.StepsPerDay == 0 {
		prj.StepsPerDay = 1
	}

	frc, err := hsami.LoadGobForcing(*frcfp)
	if err != nil {
		log.Fatalf(" forcing load: %v", err)
	}

	k, err := hsami.New(prj.Par, *prj.Mod, prj.Basin, prj.StepsPerDay)
	if err != nil {
		log.Fatalf(" %v", err)
	}
	fmt.Printf(" catchment area: %.1f km², %d timesteps\n", prj.Basin.AreaKm2, len(frc.T))

	o, _, err := k.Run(frc, nil)
	if err != nil {
		if hsami.IsNonConvergence(err) {
			log.Fatalf(" infiltration solve failed, review the conductivity and suction parameters: %v", err)
		}
		log.Fatalf(" %v", err)
	}

	mmio.WriteCsvDateFloats(*outfp, "date,qtotal,qbase,qinter,qsurf,qglace,qmh,etp,etr,swe,sol,nappe",
		o.T, o.Qtotal, o.Qbase, o.Qinter, o.Qsurf, o.Qglace, o.Qmh, o.Etp, o.Etr, o.Swe, o.Sol, o.Nappe)
}
