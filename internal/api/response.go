package api

import (
	"github.com/plansemanal/plansemanal/internal/models"
	"github.com/plansemanal/plansemanal/internal/util"
)

type planResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	WeekStart string        `json:"week_start"`
	Days      []dayResponse `json:"days"`
}

type dayResponse struct {
	Index           int               `json:"index"`
	Day             string            `json:"day"`
	Date            string            `json:"date"`
	Focus           string            `json:"focus"`
	TargetCalories  int               `json:"target_calories"`
	PlannedCalories int               `json:"planned_calories"`
	Macros          models.Macros     `json:"macros"`
	MacroSplit      models.MacroSplit `json:"macro_split"`
	Meals           []mealResponse    `json:"meals"`
}

type mealResponse struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	models.MealSlot
	BatchLabel string `json:"batch_label,omitempty"`
}

func newPlanResponse(p *models.WeeklyPlan) planResponse {
	resp := planResponse{
		ID:        p.ID,
		Title:     p.Title,
		WeekStart: p.WeekStart.Format(util.DateFormat),
		Days:      make([]dayResponse, 0, len(p.Days)),
	}
	for i := range p.Days {
		d := &p.Days[i]
		day := dayResponse{
			Index:           d.Index,
			Day:             d.Day,
			Date:            util.DayDate(p.WeekStart, d.Index).Format(util.DateFormat),
			Focus:           d.Focus,
			TargetCalories:  d.TargetCalories,
			PlannedCalories: d.PlannedCalories(),
			Macros:          d.Macros,
			MacroSplit:      d.MacroSplit(),
			Meals:           []mealResponse{},
		}
		for _, pm := range d.Slots() {
			day.Meals = append(day.Meals, mealResponse{
				Type:       pm.Type.String(),
				Label:      pm.Type.Label(),
				MealSlot:   pm.Slot,
				BatchLabel: pm.Slot.BatchLabel(),
			})
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}
