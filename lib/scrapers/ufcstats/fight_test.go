package ufcstats

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/stretchr/testify/require"
)

const (
	learyURL  = "http://www.ufcstats.com/fighter-details/aa72b0f831c0bfe5"
	delRioURL = "http://www.ufcstats.com/fighter-details/1338e2c7480bdf9e"
	orlovURL  = "http://www.ufcstats.com/fighter-details/e4f5a6b7c8d90123"
	carverURL = "http://www.ufcstats.com/fighter-details/5a6b7c8d9e0f1234"
)

var (
	totalsHeaders = []string{"Fighter", "KD", "Sig. str.", "Sig. str. %", "Total str.", "Td", "Td %", "Sub. att", "Rev.", "Ctrl"}
	sigHeaders    = []string{"Fighter", "Sig. str.", "Sig. str. %", "Head", "Body", "Leg", "Distance", "Clinch", "Ground"}
)

// fixtureRow renders one stats table row: the fighter pair in the first
// cell and two stacked paragraphs in every stat cell after it.
type fixtureRow struct {
	links [2]string
	names [2]string
	cells [][2]string
}

func (r fixtureRow) html() string {
	var b strings.Builder
	b.WriteString(`<tr class="b-fight-details__table-row"><td class="b-fight-details__table-col l-page_align_left">`)
	for i := range r.links {
		b.WriteString(`<p class="b-fight-details__table-text"><a class="b-link b-link_style_black" href="` + r.links[i] + `">` + r.names[i] + `</a></p>`)
	}
	b.WriteString(`</td>`)
	for _, cell := range r.cells {
		b.WriteString(`<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">` + cell[0] + `</p><p class="b-fight-details__table-text">` + cell[1] + `</p></td>`)
	}
	b.WriteString(`</tr>`)
	return b.String()
}

func bodyBlock(row fixtureRow) string {
	return `<tbody class="b-fight-details__table-body">` + row.html() + `</tbody>`
}

func roundBlock(number int, row fixtureRow) string {
	return fmt.Sprintf(`<thead class="b-fight-details__table-row b-fight-details__table-row_type_head"><tr><th class="b-fight-details__table-col" colspan="10">Round %d</th></tr></thead>%s`, number, bodyBlock(row))
}

func statsTable(headClass string, headers []string, blocks ...string) string {
	var b strings.Builder
	b.WriteString(`<table class="b-fight-details__table js-fight-table"><thead class="` + headClass + `"><tr class="b-fight-details__table-row">`)
	for _, header := range headers {
		b.WriteString(`<th class="b-fight-details__table-col">` + header + `</th>`)
	}
	b.WriteString(`</tr></thead>`)
	for _, block := range blocks {
		b.WriteString(block)
	}
	b.WriteString(`</table>`)
	return b.String()
}

func personBlock(status, link, name, nickname string) string {
	return `<div class="b-fight-details__person">` +
		`<i class="b-fight-details__person-status">` + status + `</i>` +
		`<div class="b-fight-details__person-text">` +
		`<h3 class="b-fight-details__person-name"><a class="b-link b-fight-details__person-link" href="` + link + `">` + name + `</a></h3>` +
		`<p class="b-fight-details__person-title">` + nickname + `</p>` +
		`</div></div>`
}

func decisionFightPage() string {
	totals := fixtureRow{
		links: [2]string{learyURL, delRioURL},
		names: [2]string{"Chris Leary", "Marco Del Rio"},
		cells: [][2]string{
			{"1", "0"},
			{"60 of 99", "46 of 81"},
			{"60%", "56%"},
			{"74 of 113", "52 of 87"},
			{"1 of 3", "0 of 2"},
			{"33%", "0%"},
			{"1", "0"},
			{"0", "0"},
			{"2:31", "0:44"},
		},
	}
	round1 := fixtureRow{
		links: [2]string{learyURL, delRioURL},
		names: [2]string{"Chris Leary", "Marco Del Rio"},
		cells: [][2]string{
			{"1", "0"},
			{"25 of 40", "20 of 30"},
			{"62%", "66%"},
			{"30 of 45", "22 of 32"},
			{"0 of 1", "0 of 1"},
			{"0%", "0%"},
			{"0", "0"},
			{"0", "0"},
			{"1:00", "0:44"},
		},
	}
	round2 := fixtureRow{
		links: [2]string{learyURL, delRioURL},
		names: [2]string{"Chris Leary", "Marco Del Rio"},
		cells: [][2]string{
			{"0", "0"},
			{"20 of 34", "16 of 31"},
			{"58%", "51%"},
			{"26 of 41", "18 of 33"},
			{"1 of 1", "0 of 1"},
			{"100%", "0%"},
			{"1", "0"},
			{"0", "0"},
			{"1:31", "0:00"},
		},
	}
	round3 := fixtureRow{
		links: [2]string{learyURL, delRioURL},
		names: [2]string{"Chris Leary", "Marco Del Rio"},
		cells: [][2]string{
			{"0", "0"},
			{"15 of 25", "10 of 20"},
			{"60%", "50%"},
			{"18 of 27", "12 of 22"},
			{"0 of 1", "0 of 0"},
			{"0%", "---"},
			{"0", "0"},
			{"0", "0"},
			{"0:00", "---"},
		},
	}
	sigTotals := fixtureRow{
		links: [2]string{learyURL, delRioURL},
		names: [2]string{"Chris Leary", "Marco Del Rio"},
		cells: [][2]string{
			{"60 of 99", "46 of 81"},
			{"60%", "56%"},
			{"40 of 70", "30 of 60"},
			{"12 of 19", "10 of 12"},
			{"8 of 10", "6 of 9"},
			{"50 of 85", "40 of 72"},
			{"6 of 9", "5 of 8"},
			{"4 of 5", "1 of 1"},
		},
	}
	// Round 1 lists the fighters in the opposite order from the general
	// table, so the merge has to match by fighter id rather than position.
	sigRound1 := fixtureRow{
		links: [2]string{delRioURL, learyURL},
		names: [2]string{"Marco Del Rio", "Chris Leary"},
		cells: [][2]string{
			{"20 of 30", "25 of 40"},
			{"66%", "62%"},
			{"12 of 22", "15 of 27"},
			{"5 of 5", "6 of 8"},
			{"3 of 3", "4 of 5"},
			{"18 of 28", "20 of 33"},
			{"2 of 2", "3 of 4"},
			{"0 of 0", "2 of 3"},
		},
	}
	sigRound2 := fixtureRow{
		links: [2]string{learyURL, delRioURL},
		names: [2]string{"Chris Leary", "Marco Del Rio"},
		cells: [][2]string{
			{"20 of 34", "16 of 31"},
			{"58%", "51%"},
			{"14 of 25", "11 of 23"},
			{"4 of 6", "3 of 4"},
			{"2 of 3", "2 of 4"},
			{"17 of 29", "14 of 27"},
			{"2 of 4", "2 of 4"},
			{"1 of 1", "0 of 0"},
		},
	}
	sigRound3 := fixtureRow{
		links: [2]string{learyURL, delRioURL},
		names: [2]string{"Chris Leary", "Marco Del Rio"},
		cells: [][2]string{
			{"15 of 25", "10 of 20"},
			{"60%", "50%"},
			{"11 of 18", "7 of 15"},
			{"2 of 5", "2 of 3"},
			{"2 of 2", "1 of 2"},
			{"13 of 23", "8 of 17"},
			{"1 of 1", "1 of 2"},
			{"1 of 1", "1 of 1"},
		},
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body><div class="l-page__container">`)
	b.WriteString(`<h2 class="b-content__title"><a class="b-link" href="http://www.ufcstats.com/event-details/77f0e2c3d4b5a691">UFC Fight Night: Leary vs. Del Rio</a></h2>`)
	b.WriteString(`<div class="b-fight-details">`)
	b.WriteString(personBlock("W", learyURL, "Chris Leary", `"The Surgeon"`))
	b.WriteString(personBlock("L", delRioURL, "Marco Del Rio", `"Iron"`))
	b.WriteString(`<div class="b-fight-details__fight"><div class="b-fight-details__fight-head"><i class="b-fight-details__fight-title">Middleweight Bout</i></div>`)
	b.WriteString(`<div class="b-fight-details__content">`)
	b.WriteString(`<p class="b-fight-details__text">` +
		`<i class="b-fight-details__text-item_first"><i class="b-fight-details__label">Method:</i> Decision - Unanimous</i>` +
		`<i class="b-fight-details__text-item"><i class="b-fight-details__label">Round:</i> 3</i>` +
		`<i class="b-fight-details__text-item"><i class="b-fight-details__label">Time:</i> 5:00</i>` +
		`<i class="b-fight-details__text-item"><i class="b-fight-details__label">Time format:</i> 3 Rnd (5-5-5)</i>` +
		`<i class="b-fight-details__text-item"><i class="b-fight-details__label">Referee:</i> Herb Dean</i>` +
		`</p>`)
	b.WriteString(`<p class="b-fight-details__text"><i class="b-fight-details__text-item_first"><i class="b-fight-details__label">Details:</i></i> Derek Cleary 30 - 27. Sal D'Amato 29 - 28. Mike Bell 30 - 27.</p>`)
	b.WriteString(`</div></div>`)
	b.WriteString(`<section class="b-fight-details__section js-fight-section"><p class="b-fight-details__collapse-link b-fight-details__collapse-link_tot">Totals</p></section>`)
	b.WriteString(`<section class="b-fight-details__section js-fight-section">` +
		statsTable("b-fight-details__table-head", totalsHeaders, bodyBlock(totals)) + `</section>`)
	b.WriteString(`<section class="b-fight-details__section js-fight-section">` +
		`<a class="b-fight-details__collapse-link b-fight-details__collapse-link_rnd js-fight-collapse-link" href="javascript:void(0);">Per round</a>` +
		statsTable("b-fight-details__table-head_rnd", totalsHeaders, roundBlock(1, round1), roundBlock(2, round2), roundBlock(3, round3)) + `</section>`)
	b.WriteString(`<section class="b-fight-details__section js-fight-section"><p class="b-fight-details__collapse-link b-fight-details__collapse-link_tot">Significant Strikes</p></section>`)
	b.WriteString(`<section class="b-fight-details__section js-fight-section">` +
		statsTable("b-fight-details__table-head", sigHeaders, bodyBlock(sigTotals)) + `</section>`)
	b.WriteString(`<section class="b-fight-details__section js-fight-section">` +
		`<a class="b-fight-details__collapse-link b-fight-details__collapse-link_rnd js-fight-collapse-link" href="javascript:void(0);">Per round</a>` +
		statsTable("b-fight-details__table-head_rnd", sigHeaders, roundBlock(1, sigRound1), roundBlock(2, sigRound2), roundBlock(3, sigRound3)) + `</section>`)
	b.WriteString(`</div></div></body></html>`)
	return b.String()
}

func TestExtractFightDecision(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(decisionFightPage()))
	require.NoError(t, err)

	fight, err := ExtractFight(doc, "http://www.ufcstats.com/fight-details/abc123def4567890")
	require.NoError(t, err)

	require.Equal(t, "abc123def4567890", fight.ID)
	require.Equal(t, ptr("77f0e2c3d4b5a691"), fight.EventID)
	require.Equal(t, ptr("UFC Fight Night: Leary vs. Del Rio"), fight.EventName)

	require.Len(t, fight.Fighters, 2)
	require.Equal(t, "Chris Leary", fight.Fighters[0].Name)
	require.Equal(t, "aa72b0f831c0bfe5", fight.Fighters[0].ID)
	require.Equal(t, ptr("W"), fight.Fighters[0].Result)
	require.Equal(t, ptr(`"The Surgeon"`), fight.Fighters[0].Nickname)
	require.Equal(t, "Marco Del Rio", fight.Fighters[1].Name)
	require.Equal(t, ptr("L"), fight.Fighters[1].Result)

	require.Equal(t, ptr("Middleweight"), fight.WeightClass)
	require.Equal(t, ptr(false), fight.IsTitleFight)
	require.Equal(t, ptr("Decision - Unanimous"), fight.Method)
	require.Equal(t, ptr(3), fight.Round)
	require.Equal(t, ptr("5:00"), fight.Time)
	require.Equal(t, ptr("3 Rnd (5-5-5)"), fight.TimeFormat)
	require.Equal(t, ptr("Herb Dean"), fight.Referee)
	require.Equal(t, ptr("Derek Cleary 30 - 27. Sal D'Amato 29 - 28. Mike Bell 30 - 27."), fight.Details)

	require.Len(t, fight.Totals, 2)
	leary, delRio := fight.Totals[0], fight.Totals[1]
	require.Equal(t, "aa72b0f831c0bfe5", leary.ID)
	require.Equal(t, ptr(1), leary.KD)
	require.Equal(t, &Fraction{Landed: 60, Attempted: 99}, leary.SigStr)
	require.Equal(t, ptr(60), leary.SigStrPct)
	require.Equal(t, &Fraction{Landed: 74, Attempted: 113}, leary.TotalStr)
	require.Equal(t, &Fraction{Landed: 1, Attempted: 3}, leary.TD)
	require.Equal(t, ptr(33), leary.TDPct)
	require.Equal(t, ptr(1), leary.SubAtt)
	require.Equal(t, ptr(0), leary.Rev)
	require.Equal(t, ptr(151), leary.CtrlSeconds)
	require.Equal(t, &Fraction{Landed: 60, Attempted: 99}, leary.SigStrTotal)
	require.Equal(t, ptr(60), leary.SigStrPctDetailed)
	require.Equal(t, &Fraction{Landed: 40, Attempted: 70}, leary.Head)
	require.Equal(t, &Fraction{Landed: 12, Attempted: 19}, leary.Body)
	require.Equal(t, &Fraction{Landed: 8, Attempted: 10}, leary.Leg)
	require.Equal(t, &Fraction{Landed: 50, Attempted: 85}, leary.Distance)
	require.Equal(t, &Fraction{Landed: 6, Attempted: 9}, leary.Clinch)
	require.Equal(t, &Fraction{Landed: 4, Attempted: 5}, leary.Ground)

	require.Equal(t, "1338e2c7480bdf9e", delRio.ID)
	// A rendered 0% is a value, not a gap.
	require.Equal(t, ptr(0), delRio.TDPct)
	require.Equal(t, ptr(44), delRio.CtrlSeconds)
	require.Equal(t, &Fraction{Landed: 30, Attempted: 60}, delRio.Head)
	require.Equal(t, &Fraction{Landed: 1, Attempted: 1}, delRio.Ground)

	require.Len(t, fight.Rounds, 3)
	for i, round := range fight.Rounds {
		require.Equal(t, i+1, round.Round)
		require.Len(t, round.Fighters, 2)
		require.Equal(t, "aa72b0f831c0bfe5", round.Fighters[0].ID)
		require.Equal(t, "1338e2c7480bdf9e", round.Fighters[1].ID)
	}

	learyR1, delRioR1 := fight.Rounds[0].Fighters[0], fight.Rounds[0].Fighters[1]
	require.Equal(t, ptr(1), learyR1.KD)
	require.Equal(t, &Fraction{Landed: 25, Attempted: 40}, learyR1.SigStr)
	require.Equal(t, ptr(60), learyR1.CtrlSeconds)
	require.Equal(t, &Fraction{Landed: 25, Attempted: 40}, learyR1.SigStrTotal)
	require.Equal(t, &Fraction{Landed: 15, Attempted: 27}, learyR1.Head)
	require.Equal(t, &Fraction{Landed: 2, Attempted: 3}, learyR1.Ground)
	require.Equal(t, &Fraction{Landed: 12, Attempted: 22}, delRioR1.Head)
	require.Equal(t, &Fraction{Landed: 0, Attempted: 0}, delRioR1.Ground)

	learyR3, delRioR3 := fight.Rounds[2].Fighters[0], fight.Rounds[2].Fighters[1]
	require.Equal(t, ptr(0), learyR3.CtrlSeconds)
	require.Nil(t, delRioR3.CtrlSeconds)
	require.Nil(t, delRioR3.TDPct)
	require.Equal(t, &Fraction{Landed: 0, Attempted: 0}, delRioR3.TD)
	require.Equal(t, &Fraction{Landed: 1, Attempted: 1}, delRioR3.Ground)

	// The per-round counts reconcile with the fight totals.
	for _, totals := range fight.Totals {
		landed := 0
		for _, round := range fight.Rounds {
			for _, line := range round.Fighters {
				if line.ID == totals.ID {
					require.NotNil(t, line.SigStr)
					landed += line.SigStr.Landed
				}
			}
		}
		require.Equal(t, totals.SigStr.Landed, landed)
	}
}

func titleFightPage() string {
	totals := fixtureRow{
		links: [2]string{orlovURL, carverURL},
		names: [2]string{"Pavel Orlov", "Jim Carver"},
		cells: [][2]string{
			{"1", "0"},
			{"12 of 18", "4 of 11"},
			{"66%", "36%"},
			{"20 of 26", "6 of 14"},
			{"1 of 1", "0 of 0"},
			{"100%", "---"},
			{"0", "0"},
			{"0", "0"},
			{"1:05", "0:00"},
		},
	}

	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><body><div class="l-page__container">`)
	b.WriteString(`<h2 class="b-content__title"><a class="b-link" href="http://www.ufcstats.com/event-details/c9d8e7f6a5b40312">UFC 298: Orlov vs. Carver</a></h2>`)
	b.WriteString(`<div class="b-fight-details">`)
	b.WriteString(personBlock("W", orlovURL, "Pavel Orlov", `"Siberian"`))
	b.WriteString(personBlock("L", carverURL, "Jim Carver", ""))
	b.WriteString(`<div class="b-fight-details__fight"><div class="b-fight-details__fight-head"><i class="b-fight-details__fight-title">UFC Heavyweight Title Bout</i></div>`)
	b.WriteString(`<div class="b-fight-details__content">`)
	b.WriteString(`<p class="b-fight-details__text">` +
		`<i class="b-fight-details__text-item_first"><i class="b-fight-details__label">Method:</i> KO/TKO</i>` +
		`<i class="b-fight-details__text-item"><i class="b-fight-details__label">Round:</i> 1</i>` +
		`<i class="b-fight-details__text-item"><i class="b-fight-details__label">Time:</i> 2:14</i>` +
		`<i class="b-fight-details__text-item"><i class="b-fight-details__label">Time format:</i> 5 Rnd (5-5-5-5-5)</i>` +
		`<i class="b-fight-details__text-item"><i class="b-fight-details__label">Referee:</i> Marc Goddard</i>` +
		`</p>`)
	b.WriteString(`<p class="b-fight-details__text"><i class="b-fight-details__label">Details:</i> Punch to Head At Distance</p>`)
	b.WriteString(`</div></div>`)
	b.WriteString(statsTable("b-fight-details__table-head", totalsHeaders, bodyBlock(totals)))
	b.WriteString(`</div></div></body></html>`)
	return b.String()
}

func TestExtractFightTitleBout(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(titleFightPage()))
	require.NoError(t, err)

	fight, err := ExtractFight(doc, "http://www.ufcstats.com/fight-details/fedcba9876543210")
	require.NoError(t, err)

	require.Equal(t, ptr("c9d8e7f6a5b40312"), fight.EventID)
	require.Equal(t, ptr(true), fight.IsTitleFight)
	require.Equal(t, ptr("UFC Heavyweight"), fight.WeightClass)
	require.Equal(t, ptr("KO/TKO"), fight.Method)
	require.Equal(t, ptr(1), fight.Round)
	require.Equal(t, ptr("2:14"), fight.Time)
	require.Equal(t, ptr("5 Rnd (5-5-5-5-5)"), fight.TimeFormat)
	require.Equal(t, ptr("Marc Goddard"), fight.Referee)
	require.Equal(t, ptr("Punch to Head At Distance"), fight.Details)

	require.Len(t, fight.Fighters, 2)
	require.Equal(t, ptr(`"Siberian"`), fight.Fighters[0].Nickname)
	require.Nil(t, fight.Fighters[1].Nickname)

	// The totals table sits outside any labeled section here, so the
	// header keywords are the only way to find it.
	require.Len(t, fight.Totals, 2)
	orlov, carver := fight.Totals[0], fight.Totals[1]
	require.Equal(t, "e4f5a6b7c8d90123", orlov.ID)
	require.Equal(t, ptr(1), orlov.KD)
	require.Equal(t, &Fraction{Landed: 12, Attempted: 18}, orlov.SigStr)
	require.Equal(t, ptr(66), orlov.SigStrPct)
	require.Equal(t, &Fraction{Landed: 20, Attempted: 26}, orlov.TotalStr)
	require.Equal(t, &Fraction{Landed: 1, Attempted: 1}, orlov.TD)
	require.Equal(t, ptr(100), orlov.TDPct)
	require.Equal(t, ptr(65), orlov.CtrlSeconds)
	require.Nil(t, orlov.SigStrTotal)
	require.Nil(t, orlov.Head)

	require.Equal(t, "5a6b7c8d9e0f1234", carver.ID)
	require.Equal(t, &Fraction{Landed: 0, Attempted: 0}, carver.TD)
	require.Nil(t, carver.TDPct)
	require.Equal(t, ptr(0), carver.CtrlSeconds)

	require.Empty(t, fight.Rounds)
	require.NotNil(t, fight.Rounds)
}

const bareFightPage = `<!DOCTYPE html>
<html><body>
<h2 class="b-content__title"><a class="b-link" href="http://www.ufcstats.com/event-details/0123456789abcdef">UFC 301</a></h2>
<div class="b-fight-details__person"><i class="b-fight-details__person-status">W</i><h3 class="b-fight-details__person-name"><a class="b-link b-fight-details__person-link" href="http://www.ufcstats.com/fighter-details/00112233445566aa">Ana Silva</a></h3><p class="b-fight-details__person-title"></p></div>
<div class="b-fight-details__person"><i class="b-fight-details__person-status">L</i><h3 class="b-fight-details__person-name"><a class="b-link b-fight-details__person-link" href="http://www.ufcstats.com/fighter-details/00112233445566bb">Meg Doyle</a></h3><p class="b-fight-details__person-title"></p></div>
</body></html>`

func TestExtractFightWithoutTables(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(bareFightPage))
	require.NoError(t, err)

	fight, err := ExtractFight(doc, "http://www.ufcstats.com/fight-details/77aa88bb99cc00dd")
	require.NoError(t, err)

	require.Len(t, fight.Fighters, 2)
	require.Equal(t, "Ana Silva", fight.Fighters[0].Name)
	require.Equal(t, "Meg Doyle", fight.Fighters[1].Name)
	require.Nil(t, fight.Method)
	require.Nil(t, fight.WeightClass)
	require.Nil(t, fight.IsTitleFight)
	require.Nil(t, fight.Details)
	require.Empty(t, fight.Totals)
	require.NotNil(t, fight.Totals)
	require.Empty(t, fight.Rounds)
	require.NotNil(t, fight.Rounds)
}
