package entries

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/beastmode/internal/cli"
	"github.com/julianstephens/beastmode/internal/constants"
	"github.com/julianstephens/beastmode/internal/models"
)

type LogCmd struct {
	Date        string `help:"Day to update (YYYY-MM-DD). Defaults to today."`
	Interactive bool   `short:"i" help:"Fill in the entry with a form."`

	Focus     *int `help:"Focus rating (1-10)."`
	Energy    *int `help:"Energy rating (1-10)."`
	Health    *int `help:"Health rating (1-10)."`
	Emotional *int `help:"Emotional state (1-10)."`

	Burnout     *string `help:"Burnout level: Low, Medium, High."`
	Anger       *string `help:"Anger frequency: None, 1x, 2x, Often."`
	MoodSwings  *string `help:"Mood swings: None, Mild, Strong."`
	MoneyStress *string `help:"Money stress: None, Moderate, High."`

	Jobs  *int     `help:"Job applications sent."`
	Study *float64 `help:"Hours studied."`

	MorningNotes *string `help:"Morning session notes."`
	MiddayNotes  *string `help:"Midday session notes."`
	EveningNotes *string `help:"Evening session notes."`
	BedtimeNotes *string `help:"Bedtime session notes."`
	Gratitude    *string `help:"Something you are grateful for."`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	patch := c.patch()
	if c.Interactive {
		var form LogForm
		if err := newLogForm(&form).Run(); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
		if patch, err = form.Patch(); err != nil {
			return err
		}
	}
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to log; pass a flag such as --focus 7 or use --interactive")
	}

	e, err := apply(ctx, date, patch)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Logged %s\n", e.Date)
	return nil
}

func (c *LogCmd) patch() models.EntryPatch {
	return models.EntryPatch{
		FocusRating:      c.Focus,
		EnergyRating:     c.Energy,
		HealthRating:     c.Health,
		EmotionalState:   c.Emotional,
		BurnoutLevel:     typed[models.BurnoutLevel](c.Burnout),
		AngerFrequency:   typed[models.AngerFrequency](c.Anger),
		MoodSwings:       typed[models.MoodSwings](c.MoodSwings),
		MoneyStressLevel: typed[models.MoneyStressLevel](c.MoneyStress),
		JobApplications:  c.Jobs,
		StudyHours:       c.Study,
		MorningNotes:     c.MorningNotes,
		MiddayNotes:      c.MiddayNotes,
		EveningNotes:     c.EveningNotes,
		BedtimeNotes:     c.BedtimeNotes,
		GratitudeEntry:   c.Gratitude,
	}
}

func typed[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

// LogForm holds the raw form inputs. Blank fields are left out of the patch.
type LogForm struct {
	Focus, Energy, Health, Emotional string

	Burnout, Anger, MoodSwings, MoneyStress string

	Jobs, Study string

	Gratitude string
}

func (f LogForm) Patch() (models.EntryPatch, error) {
	var p models.EntryPatch
	var err error
	ints := []struct {
		raw string
		dst **int
	}{
		{f.Focus, &p.FocusRating},
		{f.Energy, &p.EnergyRating},
		{f.Health, &p.HealthRating},
		{f.Emotional, &p.EmotionalState},
		{f.Jobs, &p.JobApplications},
	}
	for _, r := range ints {
		if *r.dst, err = optionalInt(r.raw); err != nil {
			return models.EntryPatch{}, err
		}
	}
	if s := strings.TrimSpace(f.Study); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.EntryPatch{}, fmt.Errorf("invalid study hours %q", s)
		}
		p.StudyHours = &v
	}
	p.BurnoutLevel = typed[models.BurnoutLevel](nonEmpty(f.Burnout))
	p.AngerFrequency = typed[models.AngerFrequency](nonEmpty(f.Anger))
	p.MoodSwings = typed[models.MoodSwings](nonEmpty(f.MoodSwings))
	p.MoneyStressLevel = typed[models.MoneyStressLevel](nonEmpty(f.MoneyStress))
	p.GratitudeEntry = nonEmpty(f.Gratitude)
	return p, p.Validate()
}

func optionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &v, nil
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func validateRating(s string) error {
	v, err := optionalInt(s)
	if err != nil {
		return err
	}
	if v != nil && (*v < constants.MinRating || *v > constants.MaxRating) {
		return fmt.Errorf("rating must be %d-%d", constants.MinRating, constants.MaxRating)
	}
	return nil
}

func choice[T ~string](title string, value *string, options ...T) *huh.Select[string] {
	opts := []huh.Option[string]{huh.NewOption("(skip)", "")}
	for _, o := range options {
		opts = append(opts, huh.NewOption(string(o), string(o)))
	}
	return huh.NewSelect[string]().Title(title).Options(opts...).Value(value)
}

func newLogForm(f *LogForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus (1-10)").Value(&f.Focus).Validate(validateRating),
			huh.NewInput().Title("Energy (1-10)").Value(&f.Energy).Validate(validateRating),
			huh.NewInput().Title("Health (1-10)").Value(&f.Health).Validate(validateRating),
			huh.NewInput().Title("Emotional state (1-10)").Value(&f.Emotional).Validate(validateRating),
		),
		huh.NewGroup(
			choice("Burnout", &f.Burnout, models.BurnoutLow, models.BurnoutMedium, models.BurnoutHigh),
			choice("Anger", &f.Anger, models.AngerNone, models.AngerOnce, models.AngerTwice, models.AngerOften),
			choice("Mood swings", &f.MoodSwings, models.MoodSwingsNone, models.MoodSwingsMild, models.MoodSwingsStrong),
			choice("Money stress", &f.MoneyStress, models.MoneyStressNone, models.MoneyStressModerate, models.MoneyStressHigh),
		),
		huh.NewGroup(
			huh.NewInput().Title("Job applications").Value(&f.Jobs).Validate(func(s string) error {
				v, err := optionalInt(s)
				if err == nil && v != nil && *v < 0 {
					err = fmt.Errorf("cannot be negative")
				}
				return err
			}),
			huh.NewInput().Title("Study hours").Value(&f.Study),
			huh.NewText().Title("Gratitude").Value(&f.Gratitude),
		),
	).WithTheme(huh.ThemeDracula())
}
