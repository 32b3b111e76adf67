package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/swipeshell/internal/input/profile"
)

func showProfile(cmd *cobra.Command, _ []string) error {
	name, err := cmd.Flags().GetString("orientation")
	if err != nil {
		return err
	}
	o, err := profile.ParseOrientation(name)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	cal, err := cfg.Gesture()
	if err != nil {
		return fmt.Errorf("invalid gesture settings: %w", err)
	}
	p := cal.Resolve(o)

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := profileJSON(o, p)
		if err != nil {
			return err
		}
		_, err = out.Write(pretty.Pretty(data))
		return err
	}

	fmt.Fprintf(out, "orientation:        %s\n", o)
	fmt.Fprintf(out, "swipe distance min: %g px\n", p.SwipeDistanceMin)
	fmt.Fprintf(out, "velocity min:       %g px/ms\n", p.VelocityMin)
	fmt.Fprintf(out, "tap distance max:   %g px\n", p.TapDistanceMax)
	fmt.Fprintf(out, "long press:         %s\n", p.LongPressDuration)
	fmt.Fprintf(out, "indicator distance: %g px\n", p.IndicatorDistance())
	return nil
}

func profileJSON(o profile.Orientation, p profile.Profile) ([]byte, error) {
	data := []byte(`{}`)
	fields := []struct {
		path  string
		value any
	}{
		{"orientation", o.String()},
		{"swipeDistanceMin", p.SwipeDistanceMin},
		{"velocityMin", p.VelocityMin},
		{"tapDistanceMax", p.TapDistanceMax},
		{"longPressMs", p.LongPressDuration.Milliseconds()},
		{"indicatorDistance", p.IndicatorDistance()},
	}
	var err error
	for _, f := range fields {
		if data, err = sjson.SetBytes(data, f.path, f.value); err != nil {
			return nil, err
		}
	}
	return data, nil
}
