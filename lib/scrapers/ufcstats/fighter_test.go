package ufcstats

import (
	"errors"
	"testing"

	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
	"github.com/stretchr/testify/require"
)

const fighterPage = `<!DOCTYPE html>
<html><body>
<section class="b-statistics__section_details">
	<div class="l-page__container">
		<h2 class="b-content__title">
			<span class="b-content__title-highlight">Jon Jones</span>
			<span class="b-content__title-record">Record: 27-1-0 (1 NC)</span>
		</h2>
	</div>
	<p class="b-content__Nickname">Bones</p>
	<div class="b-list__info-box b-list__info-box_style_small-width js-guide">
		<ul class="b-list__box-list">
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">Height:</i> 6' 4"</li>
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">Weight:</i> 248 lbs.</li>
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">Reach:</i> 84"</li>
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">STANCE:</i> Orthodox</li>
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">DOB:</i> Jul 19, 1987</li>
		</ul>
	</div>
	<div class="b-list__info-box-left clearfix">
		<ul class="b-list__box-list b-list__box-list_margin-top">
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">SLpM:</i> 4.29</li>
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">Str. Acc.:</i> 57%</li>
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">SApM:</i> 2.22</li>
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">Str. Def:</i> 64%</li>
		</ul>
		<ul class="b-list__box-list b-list__box-list_margin-top">
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">TD Avg.:</i> 1.93</li>
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">TD Acc.:</i> 45%</li>
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">TD Def.:</i> 95%</li>
			<li class="b-list__box-list-item b-list__box-list-item_type_block"><i class="b-list__box-item-title b-list__box-item-title_type_width">Sub. Avg.:</i> 0.5</li>
		</ul>
	</div>
	<table class="b-fight-details__table two-rows">
		<thead class="b-fight-details__table-head">
			<tr class="b-fight-details__table-row b-fight-details__table-row_type_head">
				<th class="b-fight-details__table-col">W/L</th>
				<th class="b-fight-details__table-col">Fighter</th>
				<th class="b-fight-details__table-col">Kd</th>
				<th class="b-fight-details__table-col">Str</th>
				<th class="b-fight-details__table-col">Td</th>
				<th class="b-fight-details__table-col">Sub</th>
				<th class="b-fight-details__table-col">Event</th>
				<th class="b-fight-details__table-col">Method</th>
				<th class="b-fight-details__table-col">Round</th>
				<th class="b-fight-details__table-col">Time</th>
			</tr>
		</thead>
		<tbody class="b-fight-details__table-body">
			<tr class="b-fight-details__table-row b-fight-details__table-row__hover js-fight-details-click" onclick="doNav('http://www.ufcstats.com/fight-details/4b227c54a5c34b1c')">
				<td class="b-fight-details__table-col b-fight-details__table-col_style_align-top">
					<p class="b-fight-details__table-text"><a class="b-flag b-flag_style_green" href="http://www.ufcstats.com/fight-details/4b227c54a5c34b1c"><i class="b-flag__text">win</i></a></p>
				</td>
				<td class="b-fight-details__table-col l-page_align_left">
					<p class="b-fight-details__table-text"><a class="b-link b-link_style_black" href="http://www.ufcstats.com/fighter-details/07f72a2a7591b409">Jon Jones</a></p>
					<p class="b-fight-details__table-text"><a class="b-link b-link_style_black" href="http://www.ufcstats.com/fighter-details/2e5c2aa5b232bf8c">Ciryl Gane</a></p>
				</td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">0</p><p class="b-fight-details__table-text">0</p></td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">7</p><p class="b-fight-details__table-text">5</p></td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">2</p><p class="b-fight-details__table-text">0</p></td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">1</p><p class="b-fight-details__table-text">0</p></td>
				<td class="b-fight-details__table-col">
					<p class="b-fight-details__table-text"><a class="b-link b-link_style_black" href="http://www.ufcstats.com/event-details/53278852bcd91e11">UFC 285: Jones vs. Gane</a></p>
					<p class="b-fight-details__table-text">Mar. 04, 2023</p>
				</td>
				<td class="b-fight-details__table-col">
					<p class="b-fight-details__table-text">SUB</p>
					<p class="b-fight-details__table-text">Guillotine Choke</p>
				</td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">1</p></td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">2:04</p></td>
			</tr>
			<tr class="b-fight-details__table-row b-fight-details__table-row__hover js-fight-details-click" onclick="doNav('http://www.ufcstats.com/fight-details/8d6e9f1a2b3c4d5e')">
				<td class="b-fight-details__table-col b-fight-details__table-col_style_align-top">
					<p class="b-fight-details__table-text"><a class="b-flag" href="http://www.ufcstats.com/fight-details/8d6e9f1a2b3c4d5e"><i class="b-flag__text">next</i></a></p>
				</td>
				<td class="b-fight-details__table-col l-page_align_left">
					<p class="b-fight-details__table-text"><a class="b-link b-link_style_black" href="http://www.ufcstats.com/fighter-details/07f72a2a7591b409">Jon Jones</a></p>
					<p class="b-fight-details__table-text"><a class="b-link b-link_style_black" href="http://www.ufcstats.com/fighter-details/93fe7332d16c6ad9">Stipe Miocic</a></p>
				</td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">---</p><p class="b-fight-details__table-text">---</p></td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">---</p><p class="b-fight-details__table-text">---</p></td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">---</p><p class="b-fight-details__table-text">---</p></td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">---</p><p class="b-fight-details__table-text">---</p></td>
				<td class="b-fight-details__table-col">
					<p class="b-fight-details__table-text"><a class="b-link b-link_style_black" href="http://www.ufcstats.com/event-details/a4b5c6d7e8f90123">UFC 309: Jones vs. Miocic</a></p>
					<p class="b-fight-details__table-text">Nov. 16, 2024</p>
				</td>
				<td class="b-fight-details__table-col">
					<p class="b-fight-details__table-text"></p>
				</td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">---</p></td>
				<td class="b-fight-details__table-col"><p class="b-fight-details__table-text">---</p></td>
			</tr>
		</tbody>
	</table>
</section>
</body></html>`

const sparseFighterPage = `<!DOCTYPE html>
<html><body>
<section class="b-statistics__section_details">
	<h2 class="b-content__title">
		<span class="b-content__title-highlight">Sam Okafor</span>
		<span class="b-content__title-record">Record: 2-0-0</span>
	</h2>
	<p class="b-content__Nickname"></p>
	<div class="b-list__info-box">
		<ul class="b-list__box-list">
			<li class="b-list__box-list-item"><i class="b-list__box-item-title">Height:</i> 5' 11"</li>
			<li class="b-list__box-list-item"><i class="b-list__box-item-title">Weight:</i> 155 lbs.</li>
			<li class="b-list__box-list-item"><i class="b-list__box-item-title">Reach:</i> --</li>
			<li class="b-list__box-list-item"><i class="b-list__box-item-title">STANCE:</i> </li>
			<li class="b-list__box-list-item"><i class="b-list__box-item-title">DOB:</i> --</li>
			<li class="b-list__box-list-item"><i class="b-list__box-item-title">SLpM:</i> 0.00</li>
			<li class="b-list__box-list-item"><i class="b-list__box-item-title">Str. Acc.:</i> 0%</li>
			<li class="b-list__box-list-item"><i class="b-list__box-item-title">SApM:</i> </li>
			<li class="b-list__box-list-item"><i class="b-list__box-item-title">Str. Def:</i> ---</li>
		</ul>
	</div>
</section>
</body></html>`

func TestExtractFighter(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(fighterPage))
	require.NoError(t, err)

	fighter, err := ExtractFighter(doc, "http://www.ufcstats.com/fighter-details/07f72a2a7591b409")
	require.NoError(t, err)

	require.Equal(t, "07f72a2a7591b409", fighter.ID)
	require.Equal(t, ptr("Jon Jones"), fighter.Name)
	require.Equal(t, ptr("Bones"), fighter.Nickname)
	require.Equal(t, &Record{Wins: 27, Losses: 1, Draws: 0, NoContests: 1}, fighter.Record)

	require.Equal(t, ptr(`6' 4"`), fighter.Height)
	require.Equal(t, ptr("248 lbs."), fighter.Weight)
	require.Equal(t, ptr("84"), fighter.Reach)
	require.Equal(t, ptr("Orthodox"), fighter.Stance)
	require.Equal(t, ptr("Jul 19, 1987"), fighter.DOB)

	require.Equal(t, ptr(4.29), fighter.SLpM)
	require.Equal(t, ptr(57), fighter.StrAcc)
	require.Equal(t, ptr(2.22), fighter.SApM)
	require.Equal(t, ptr(64), fighter.StrDef)
	require.Equal(t, ptr(1.93), fighter.TDAvg)
	require.Equal(t, ptr(45), fighter.TDAcc)
	require.Equal(t, ptr(95), fighter.TDDef)
	require.Equal(t, ptr(0.5), fighter.SubAvg)

	require.Len(t, fighter.Fights, 2)

	past := fighter.Fights[0]
	require.Equal(t, "http://www.ufcstats.com/fight-details/4b227c54a5c34b1c", past.FightURL)
	require.Equal(t, "4b227c54a5c34b1c", past.FightID)
	require.Equal(t, ptr("win"), past.Result)
	require.Equal(t, ptr("Ciryl Gane"), past.Opponent)
	require.Equal(t, ptr("2e5c2aa5b232bf8c"), past.OpponentID)
	require.Equal(t, ptr(0), past.KD)
	require.Equal(t, ptr(7), past.Str)
	require.Equal(t, ptr(2), past.TD)
	require.Equal(t, ptr(1), past.Sub)
	require.Equal(t, ptr("UFC 285: Jones vs. Gane"), past.EventName)
	require.Equal(t, ptr("53278852bcd91e11"), past.EventID)
	require.Equal(t, ptr("Mar. 04, 2023"), past.Date)
	require.Equal(t, ptr("SUB"), past.Method)
	require.Equal(t, ptr("Guillotine Choke"), past.Details)
	require.Equal(t, ptr("1"), past.Round)
	require.Equal(t, ptr("2:04"), past.Time)

	upcoming := fighter.Fights[1]
	require.Equal(t, "8d6e9f1a2b3c4d5e", upcoming.FightID)
	require.Equal(t, ptr("next"), upcoming.Result)
	require.Equal(t, ptr("Stipe Miocic"), upcoming.Opponent)
	require.Nil(t, upcoming.KD)
	require.Nil(t, upcoming.Str)
	require.Nil(t, upcoming.TD)
	require.Nil(t, upcoming.Sub)
	require.Nil(t, upcoming.Method)
	require.Nil(t, upcoming.Round)
	require.Nil(t, upcoming.Time)
	require.Equal(t, ptr("UFC 309: Jones vs. Miocic"), upcoming.EventName)
}

func TestExtractFighterPlaceholders(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(sparseFighterPage))
	require.NoError(t, err)

	fighter, err := ExtractFighter(doc, "http://ufcstats.com/fighter-details/b1c2d3e4f5a60718")
	require.NoError(t, err)

	require.Equal(t, "b1c2d3e4f5a60718", fighter.ID)
	require.Equal(t, ptr("Sam Okafor"), fighter.Name)
	require.Nil(t, fighter.Nickname)
	require.Equal(t, &Record{Wins: 2, Losses: 0, Draws: 0, NoContests: 0}, fighter.Record)

	require.Equal(t, ptr(`5' 11"`), fighter.Height)
	require.Nil(t, fighter.Reach)
	require.Nil(t, fighter.Stance)
	require.Nil(t, fighter.DOB)

	// A rendered zero is a value, a dash or blank is not.
	require.Equal(t, ptr(0.0), fighter.SLpM)
	require.Equal(t, ptr(0), fighter.StrAcc)
	require.Nil(t, fighter.SApM)
	require.Nil(t, fighter.StrDef)

	require.Empty(t, fighter.Fights)
	require.NotNil(t, fighter.Fights)
}

func TestExtractFighterRejectsBadURL(t *testing.T) {
	doc, err := htmlutil.Parse([]byte(sparseFighterPage))
	require.NoError(t, err)

	_, err = ExtractFighter(doc, "http://www.ufcstats.com/statistics/events/completed")
	require.Error(t, err)
	require.True(t, errors.Is(err, urlid.ErrInvalidURL))
}
