package condition

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"liyu1981.xyz/dialog-service/pkg/glucose"
)

type Mode int

const (
	ModeSimple Mode = iota + 1
	ModeComprehensive
	ModeIntensive
)

func (m Mode) String() string {
	switch m {
	case ModeSimple:
		return "Simple"
	case ModeComprehensive:
		return "Comprehensive"
	case ModeIntensive:
		return "Intensive"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return ModeSimple, nil
	case "comprehensive":
		return ModeComprehensive, nil
	case "intensive":
		return ModeIntensive, nil
	}
	return 0, fmt.Errorf("unknown logging mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Dropdown choices offered for unusual events.
var (
	IllnessOptions          = []string{"Flu", "Fever", "Infection"}
	StressOptions           = []string{"Work-related stress", "Exam or school stress", "Family/Personal stress"}
	SkippedMealOptions      = []string{"Breakfast", "Lunch", "Dinner"}
	MedicationChangeOptions = []string{"New medication added", "Missed dose", "Dose adjustment"}
	TravelOptions           = []string{"Long-distance travel", "Time zone change"}
)

// Form is a filled-in logging form of one mode.
type Form interface {
	Mode() Mode
	Fields() FieldMapping
	Reading() glucose.Reading
}

type BloodSugarSection struct {
	BloodSugarTime  time.Time `json:"bloodSugarTime"`
	BloodSugarLevel string    `json:"bloodSugarLevel"`
	MealTiming      string    `json:"mealTiming"`
	BloodSugarNote  string    `json:"noteBloodSugar"`
}

func (s BloodSugarSection) Reading() glucose.Reading {
	return glucose.Reading{Value: s.BloodSugarLevel, MealTiming: glucose.ParseMealTiming(s.MealTiming)}
}

type FoodSection struct {
	FoodTime           time.Time `json:"foodTime"`
	SelectedMeal       string    `json:"selectedMeal"`
	Food               string    `json:"food"`
	CaloriesIntake     string    `json:"caloriesIntake"`
	CarbohydrateIntake string    `json:"carbohydrateIntake"`
	FoodNote           string    `json:"noteFood"`
}

type ExerciseSection struct {
	ExerciseName string `json:"exerciseName"`
	Duration     string `json:"duration"`
	Intensity    string `json:"intensity"`
}

// DoseEntry is a timed value with a free-text note (insulin, ketone, basal).
type DoseEntry struct {
	Value  string    `json:"value"`
	Timing time.Time `json:"timing"`
	Note   string    `json:"note"`
}

type UnusualEvents struct {
	Illness          Optional[string] `json:"selectedIllness"`
	Stress           Optional[string] `json:"selectedStress"`
	SkippedMeal      Optional[string] `json:"selectedSkippedMeal"`
	MedicationChange Optional[string] `json:"selectedMedicationChange"`
	Travel           Optional[string] `json:"selectedTravel"`
	Note             string           `json:"unusualEventNote"`
}

func (u UnusualEvents) Validate() error {
	checks := []struct {
		name    string
		value   Optional[string]
		options []string
	}{
		{"illness", u.Illness, IllnessOptions},
		{"stress", u.Stress, StressOptions},
		{"skipped meal", u.SkippedMeal, SkippedMealOptions},
		{"medication change", u.MedicationChange, MedicationChangeOptions},
		{"travel", u.Travel, TravelOptions},
	}

	for _, c := range checks {
		v, ok := c.value.Get()
		if !ok || v == "" {
			continue
		}
		if !slices.Contains(c.options, v) {
			return fmt.Errorf("unknown %s option %q", c.name, v)
		}
	}
	return nil
}

type SimpleForm struct {
	SelectedDate time.Time `json:"selectedDate"`
	BloodSugarSection
	FoodSection
}

func (f SimpleForm) Mode() Mode { return ModeSimple }

func (f SimpleForm) Fields() FieldMapping {
	return FieldMapping{
		dateField("selectedDateSimple", f.SelectedDate),
		dateField("bloodSugarTimeSimple", f.BloodSugarTime),
		dateField("foodTimeSimple", f.FoodTime),
		textField("bloodSugarSimple", f.BloodSugarLevel, f.BloodSugarTime),
		textField("mealTimingSimple", f.MealTiming, f.SelectedDate),
		textField("noteBloodSugarSimple", f.BloodSugarNote, f.SelectedDate),
		textField("selectedMealSimple", f.SelectedMeal, f.FoodTime),
		textField("foodSimple", f.Food, f.FoodTime),
		textField("caloriesIntakeSimple", f.CaloriesIntake, f.FoodTime),
		textField("carbohydrateIntakeSimple", f.CarbohydrateIntake, f.FoodTime),
		textField("noteFoodSimple", f.FoodNote, f.FoodTime),
	}
}

func (f *SimpleForm) setDefaults(now time.Time) {
	defaultTimes(now, &f.SelectedDate, &f.BloodSugarTime, &f.FoodTime)
}

type ComprehensiveForm struct {
	SelectedDate time.Time `json:"selectedDate"`
	BloodSugarSection
	FoodSection
	InsulinTiming  time.Time `json:"insulinTiming"`
	MedicationName string    `json:"medicationName"`
	Dosage         string    `json:"dosage"`
	InsulinNote    string    `json:"insulinNote"`
	ExerciseSection
}

func (f ComprehensiveForm) Mode() Mode { return ModeComprehensive }

func (f ComprehensiveForm) Fields() FieldMapping {
	return FieldMapping{
		dateField("selectedDateComprehensive", f.SelectedDate),
		dateField("bloodSugarTimeComprehensive", f.BloodSugarTime),
		dateField("foodTimeComprehensive", f.FoodTime),
		dateField("insulinTimingComprehensive", f.InsulinTiming),
		textField("bloodSugarComprehensive", f.BloodSugarLevel, f.BloodSugarTime),
		textField("mealTimingComprehensive", f.MealTiming, f.SelectedDate),
		textField("noteBloodSugarComprehensive", f.BloodSugarNote, f.SelectedDate),
		textField("selectedMealComprehensive", f.SelectedMeal, f.FoodTime),
		textField("foodComprehensive", f.Food, f.FoodTime),
		textField("caloriesIntakeComprehensive", f.CaloriesIntake, f.FoodTime),
		textField("carbohydrateIntakeComprehensive", f.CarbohydrateIntake, f.FoodTime),
		textField("noteFoodComprehensive", f.FoodNote, f.FoodTime),
		textField("medicationNameComprehensive", f.MedicationName, f.InsulinTiming),
		textField("dosageComprehensive", f.Dosage, f.InsulinTiming),
		textField("insulinNoteComprehensive", f.InsulinNote, f.InsulinTiming),
		textField("exerciseNameComprehensive", f.ExerciseName, f.SelectedDate),
		textField("durationComprehensive", f.Duration, f.SelectedDate),
		textField("intensityComprehensive", f.Intensity, f.SelectedDate),
	}
}

func (f *ComprehensiveForm) setDefaults(now time.Time) {
	defaultTimes(now, &f.SelectedDate, &f.BloodSugarTime, &f.FoodTime, &f.InsulinTiming)
}

type IntensiveForm struct {
	SelectedDate time.Time `json:"selectedDate"`
	BloodSugarSection
	FoodSection
	CarbBolus   DoseEntry `json:"carbBolus"`
	HighBSBolus DoseEntry `json:"highBSBolus"`
	Ketone      DoseEntry `json:"ketone"`
	Basal       DoseEntry `json:"basal"`
	ExerciseSection
	UnusualEvents
}

func (f IntensiveForm) Mode() Mode { return ModeIntensive }

// Fields keeps the app's historical "bloodSugar" key for the reading.
// Exercise entries are dated by the basal timing.
func (f IntensiveForm) Fields() FieldMapping {
	return FieldMapping{
		dateField("selectedDateIntensive", f.SelectedDate),
		dateField("bloodSugarTimeIntensive", f.BloodSugarTime),
		dateField("foodTimeIntensive", f.FoodTime),
		textField("bloodSugar", f.BloodSugarLevel, f.BloodSugarTime),
		textField("mealTimingIntensive", f.MealTiming, f.SelectedDate),
		textField("noteBloodSugarIntensive", f.BloodSugarNote, f.SelectedDate),

		textField("selectedMealIntensive", f.SelectedMeal, f.FoodTime),
		textField("foodIntensive", f.Food, f.FoodTime),
		textField("caloriesIntakeIntensive", f.CaloriesIntake, f.FoodTime),
		textField("carbohydrateIntakeIntensive", f.CarbohydrateIntake, f.FoodTime),
		textField("noteFoodIntensive", f.FoodNote, f.FoodTime),

		textField("carbBolusDosageIntensive", f.CarbBolus.Value, f.CarbBolus.Timing),
		textField("carbBolusNoteIntensive", f.CarbBolus.Note, f.CarbBolus.Timing),
		dateField("carbBolusTimeIntensive", f.CarbBolus.Timing),
		textField("highBSBolusInsulinDoseIntensive", f.HighBSBolus.Value, f.HighBSBolus.Timing),
		textField("highBSBolusInsulinNoteIntensive", f.HighBSBolus.Note, f.HighBSBolus.Timing),
		dateField("highBSBolusInsulinTimingIntensive", f.HighBSBolus.Timing),

		textField("ketoneValueIntensive", f.Ketone.Value, f.Ketone.Timing),
		textField("ketoneNoteIntensive", f.Ketone.Note, f.Ketone.Timing),
		dateField("ketoneTimingIntensive", f.Ketone.Timing),

		textField("basalValueIntensive", f.Basal.Value, f.Basal.Timing),
		textField("basalNoteIntensive", f.Basal.Note, f.Basal.Timing),
		dateField("basalTimingIntensive", f.Basal.Timing),

		textField("exerciseNameIntensive", f.ExerciseName, f.Basal.Timing),
		textField("durationIntensive", f.Duration, f.Basal.Timing),
		textField("intensityIntensive", f.Intensity, f.Basal.Timing),

		textField("unusualEventNoteIntensive", f.UnusualEvents.Note, f.SelectedDate),
		{DataType: "selectedIllnessIntensive", Value: f.Illness, Date: f.SelectedDate},
		{DataType: "selectedStressIntensive", Value: f.Stress, Date: f.SelectedDate},
		{DataType: "selectedSkippedMealIntensive", Value: f.SkippedMeal, Date: f.SelectedDate},
		{DataType: "selectedMedicationChangeIntensive", Value: f.MedicationChange, Date: f.SelectedDate},
		{DataType: "selectedTravelIntensive", Value: f.Travel, Date: f.SelectedDate},
	}
}

func (f *IntensiveForm) setDefaults(now time.Time) {
	defaultTimes(now, &f.SelectedDate, &f.BloodSugarTime, &f.FoodTime,
		&f.CarbBolus.Timing, &f.HighBSBolus.Timing, &f.Ketone.Timing, &f.Basal.Timing)
}

var clock = time.Now

// DecodeForm reads a JSON form of the given mode. Times left out default to
// the current instant, the way the app pre-fills its pickers.
func DecodeForm(mode Mode, data []byte) (Form, error) {
	var form interface {
		Form
		setDefaults(now time.Time)
	}

	switch mode {
	case ModeSimple:
		form = &SimpleForm{}
	case ModeComprehensive:
		form = &ComprehensiveForm{}
	case ModeIntensive:
		form = &IntensiveForm{}
	default:
		return nil, fmt.Errorf("unknown logging mode %d", int(mode))
	}

	if err := json.Unmarshal(data, form); err != nil {
		return nil, fmt.Errorf("decoding %s form: %w", mode, err)
	}

	if f, ok := form.(*IntensiveForm); ok {
		if err := f.UnusualEvents.Validate(); err != nil {
			return nil, err
		}
	}

	form.setDefaults(clock().UTC().Truncate(time.Second))
	return form, nil
}

func textField(dataType, value string, date time.Time) Field {
	return Field{DataType: dataType, Value: Some(value), Date: date}
}

// dateField carries the formatted date as its own value. An unset time is
// not a value.
func dateField(dataType string, date time.Time) Field {
	if date.IsZero() {
		return Field{DataType: dataType, Date: date}
	}
	return Field{DataType: dataType, Value: Some(FormatEventDate(date)), Date: date}
}

func defaultTimes(now time.Time, times ...*time.Time) {
	for _, t := range times {
		if t.IsZero() {
			*t = now
		}
	}
}
