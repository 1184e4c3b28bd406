package indicator_test

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-ta/mocks"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/stat"
)

type IndicatorTestSuite struct {
	suite.Suite
	f num.NumFactory
}

func TestIndicatorSuite(t *testing.T) {
	suite.Run(t, new(IndicatorTestSuite))
}

func (suite *IndicatorTestSuite) SetupTest() {
	suite.f = num.DoubleNumFactory()
}

func (suite *IndicatorTestSuite) assertValues(ind indicator.Indicator, expected ...float64) {
	suite.T().Helper()

	values, err := indicator.Values(ind, 0, len(expected)-1)
	suite.Require().NoError(err)

	for i, v := range values {
		suite.InDelta(expected[i], v.Float64(), 1e-9, "index %d", i)
	}
}

func (suite *IndicatorTestSuite) TestPriceIndicators() {
	start := mocks.DefaultConfig().StartTime
	s := series.NewBuilder().WithNumFactory(suite.f).WithBars(
		series.NewBarOf(suite.f, time.Minute, start.Add(time.Minute), 10, 12, 8, 11, 100),
		series.NewBarOf(suite.f, time.Minute, start.Add(2*time.Minute), 11, 15, 11, 14, 200),
	).MustBuild()

	suite.assertValues(indicator.NewOpenPrice(s), 10, 11)
	suite.assertValues(indicator.NewHighPrice(s), 12, 15)
	suite.assertValues(indicator.NewLowPrice(s), 8, 11)
	suite.assertValues(indicator.NewClosePrice(s), 11, 14)
	suite.assertValues(indicator.NewVolume(s), 100, 200)
	suite.assertValues(indicator.NewAmount(s), 0, 0)
	suite.assertValues(indicator.NewTypicalPrice(s), 31.0/3.0, 40.0/3.0)
	suite.assertValues(indicator.NewMedianPrice(s), 10, 13)
	suite.Equal("close price", indicator.NewClosePrice(s).Field())
	suite.Equal(0, indicator.NewClosePrice(s).UnstableBars())
}

func (suite *IndicatorTestSuite) TestPriceOfEmptyBar() {
	s := series.NewBuilder().WithNumFactory(suite.f).WithBars(
		series.NewEmptyBar(suite.f, time.Minute, mocks.DefaultConfig().StartTime.Add(time.Minute)),
	).MustBuild()

	_, err := indicator.NewClosePrice(s).GetValue(0)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
	suite.Contains(err.Error(), "bar 0 has no close price")

	v, err := indicator.NewVolume(s).GetValue(0)
	suite.Require().NoError(err)
	suite.True(v.IsZero())
}

func (suite *IndicatorTestSuite) TestConstantAndFixed() {
	s := mocks.SeriesOf(suite.f, 1, 2, 3)

	c, err := indicator.NewConstant(s, suite.f.NumOf(7))
	suite.Require().NoError(err)
	suite.assertValues(c, 7, 7, 7)

	_, err = c.GetValue(3)
	suite.True(errors.HasCode(err, errors.ErrCodeIndexOutOfBounds))

	_, err = indicator.NewConstant(s, num.DecimalNumFactory(8).NumOf(7))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidOperand))

	fixed := indicator.NewFixed(s, 4, 5)
	suite.assertValues(fixed, 4, 5)

	_, err = fixed.GetValue(2)
	suite.True(errors.HasCode(err, errors.ErrCodeIndexOutOfBounds))
}

func (suite *IndicatorTestSuite) TestChange() {
	s := mocks.SeriesOf(suite.f, 10, 11, 9, 12)

	suite.assertValues(indicator.NewChangeFromSeries(s), 0, 1, -2, 3)

	two, err := indicator.NewChange(indicator.NewClosePrice(s), 2)
	suite.Require().NoError(err)
	suite.assertValues(two, 0, 0, -1, 1)
	suite.Equal(2, two.UnstableBars())

	_, err = indicator.NewChange(indicator.NewClosePrice(s), 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *IndicatorTestSuite) TestChangeOnDecimals() {
	f := num.DecimalNumFactory(num.DefaultPrecision)
	s := mocks.SeriesOf(f, 10, 11, 9, 12)

	values, err := indicator.Values(indicator.NewChangeFromSeries(s), 0, 3)
	suite.Require().NoError(err)

	actual := make([]string, len(values))
	for i, v := range values {
		actual[i] = v.String()
		suite.Equal(num.FamilyDecimal, v.Family())
	}

	suite.Equal([]string{"0", "1", "-2", "3"}, actual)
}

func (suite *IndicatorTestSuite) TestPrevious() {
	s := mocks.SeriesOf(suite.f, 10, 11, 9, 12)

	p, err := indicator.NewPrevious(indicator.NewClosePrice(s), 2)
	suite.Require().NoError(err)
	suite.assertValues(p, 0, 0, 10, 11)
	suite.Equal(2, p.UnstableBars())

	sma, err := indicator.NewSMA(indicator.NewClosePrice(s), 3)
	suite.Require().NoError(err)

	p, err = indicator.NewPrevious(sma, 2)
	suite.Require().NoError(err)
	suite.Equal(5, p.UnstableBars())

	_, err = indicator.NewPrevious(sma, 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *IndicatorTestSuite) TestROC() {
	s := mocks.SeriesOf(suite.f, 10, 11, 9, 12)

	roc, err := indicator.NewROC(indicator.NewClosePrice(s), 1)
	suite.Require().NoError(err)
	suite.assertValues(roc, 0, 10, -200.0/11.0, 100.0/3.0)

	zero := mocks.SeriesOf(suite.f, 0, 1)
	roc, err = indicator.NewROC(indicator.NewClosePrice(zero), 1)
	suite.Require().NoError(err)

	_, err = roc.GetValue(1)
	suite.True(errors.HasCode(err, errors.ErrCodeDivisionByZero))
}

func (suite *IndicatorTestSuite) TestGainAndLoss() {
	s := mocks.SeriesOf(suite.f, 10, 11, 9, 12)

	suite.assertValues(indicator.NewGain(indicator.NewClosePrice(s)), 0, 1, 0, 3)
	suite.assertValues(indicator.NewLoss(indicator.NewClosePrice(s)), 0, 0, 2, 0)
}

func (suite *IndicatorTestSuite) TestWindows() {
	s := mocks.SeriesOf(suite.f, 10, 11, 9, 12)
	closePrice := indicator.NewClosePrice(s)

	sum, err := indicator.NewSum(closePrice, 2)
	suite.Require().NoError(err)
	suite.assertValues(sum, 10, 21, 20, 21)

	highest, err := indicator.NewHighest(closePrice, 2)
	suite.Require().NoError(err)
	suite.assertValues(highest, 10, 11, 11, 12)

	lowest, err := indicator.NewLowest(closePrice, 2)
	suite.Require().NoError(err)
	suite.assertValues(lowest, 10, 10, 9, 9)

	for _, create := range []func(indicator.Indicator, int) (indicator.Indicator, error){
		func(src indicator.Indicator, n int) (indicator.Indicator, error) { return indicator.NewSum(src, n) },
		func(src indicator.Indicator, n int) (indicator.Indicator, error) { return indicator.NewHighest(src, n) },
		func(src indicator.Indicator, n int) (indicator.Indicator, error) { return indicator.NewLowest(src, n) },
		func(src indicator.Indicator, n int) (indicator.Indicator, error) { return indicator.NewSMA(src, n) },
		func(src indicator.Indicator, n int) (indicator.Indicator, error) { return indicator.NewVariance(src, n) },
	} {
		_, err := create(closePrice, 0)
		suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
	}
}

func (suite *IndicatorTestSuite) TestSMA() {
	s := mocks.SeriesOf(suite.f, 1, 2, 3, 4, 5)

	sma, err := indicator.NewSMA(indicator.NewClosePrice(s), 3)
	suite.Require().NoError(err)
	suite.assertValues(sma, 1, 1.5, 2, 3, 4)
	suite.Equal(3, sma.Period())
	suite.Equal(3, sma.UnstableBars())
	suite.False(indicator.Stable(sma, 2))
	suite.True(indicator.Stable(sma, 3))
}

func (suite *IndicatorTestSuite) TestStandardDeviationMatchesGonum() {
	gen := mocks.NewDataGenerator(7)
	config := mocks.DefaultConfig()
	config.Count = 200

	s, err := gen.GenerateSeries(config, suite.f)
	suite.Require().NoError(err)

	const period = 20
	closePrice := indicator.NewClosePrice(s)

	sd, err := indicator.NewStandardDeviation(closePrice, period)
	suite.Require().NoError(err)

	variance, err := indicator.NewVariance(closePrice, period)
	suite.Require().NoError(err)

	for i := period - 1; i <= s.EndIndex(); i += 17 {
		values, err := indicator.Values(closePrice, i-period+1, i)
		suite.Require().NoError(err)

		window := num.Slice(values).Float64s()
		population := stat.Variance(window, nil) * float64(period-1) / float64(period)

		v, err := variance.GetValue(i)
		suite.Require().NoError(err)
		suite.InDelta(population, v.Float64(), 1e-6)

		d, err := sd.GetValue(i)
		suite.Require().NoError(err)
		suite.InDelta(stat.StdDev(window, nil)*math.Sqrt(float64(period-1)/float64(period)), d.Float64(), 1e-6)
	}
}

func (suite *IndicatorTestSuite) TestEMA() {
	s := mocks.SeriesOf(suite.f, 1, 2, 3, 4, 5)

	ema, err := indicator.NewEMA(indicator.NewClosePrice(s), 3)
	suite.Require().NoError(err)
	suite.assertValues(ema, 1, 1.5, 2.25, 3.125, 4.0625)
	suite.Equal(3, ema.Period())
	suite.Equal(3, ema.UnstableBars())

	mma, err := indicator.NewMMA(indicator.NewClosePrice(s), 4)
	suite.Require().NoError(err)
	suite.assertValues(mma, 1, 1.25, 1.6875, 2.265625)

	_, err = indicator.NewEMA(indicator.NewClosePrice(s), 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *IndicatorTestSuite) TestEMASeedsAtFirstRetainedBar() {
	start := mocks.DefaultConfig().StartTime
	s := series.NewBuilder().WithNumFactory(suite.f).WithMaxBarCount(2).MustBuild()
	for i, c := range []float64{1, 2, 3, 4} {
		suite.Require().NoError(s.AddBar(series.NewBarOf(suite.f, time.Minute, start.Add(time.Duration(i+1)*time.Minute), c, c, c, c, 1)))
	}

	ema, err := indicator.NewEMA(indicator.NewClosePrice(s), 3)
	suite.Require().NoError(err)

	v, err := ema.GetValue(2)
	suite.Require().NoError(err)
	suite.Equal(3.0, v.Float64())

	v, err = ema.GetValue(3)
	suite.Require().NoError(err)
	suite.Equal(3.5, v.Float64())
}

func (suite *IndicatorTestSuite) TestCombine() {
	s := mocks.SeriesOf(suite.f, 1, 2, 3)
	closePrice := indicator.NewClosePrice(s)
	fixed := indicator.NewFixed(s, 3, 2, 0)

	cases := []struct {
		name     string
		op       indicator.BinaryOperator
		expected []float64
	}{
		{"plus", indicator.Plus, []float64{4, 4, 3}},
		{"minus", indicator.Minus, []float64{-2, 0, 3}},
		{"multiply", indicator.Multiply, []float64{3, 4, 0}},
		{"max", indicator.Max, []float64{3, 2, 3}},
		{"min", indicator.Min, []float64{1, 2, 0}},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			c, err := indicator.NewCombine(closePrice, fixed, tc.op)
			suite.Require().NoError(err)
			suite.assertValues(c, tc.expected...)
		})
	}

	divide, err := indicator.NewCombine(closePrice, fixed, indicator.Divide)
	suite.Require().NoError(err)
	suite.assertValues(divide, 1.0/3.0, 1)

	_, err = divide.GetValue(2)
	suite.True(errors.HasCode(err, errors.ErrCodeDivisionByZero))

	other := mocks.SeriesOf(suite.f, 1, 2, 3)
	_, err = indicator.NewCombine(closePrice, indicator.NewClosePrice(other), indicator.Plus)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidOperand))
}

func (suite *IndicatorTestSuite) TestTransform() {
	s := mocks.SeriesOf(suite.f, 1, 4, 9)
	closePrice := indicator.NewClosePrice(s)
	three := suite.f.Three()

	suite.assertValues(indicator.NewTransform(closePrice, indicator.Sqrt), 1, 2, 3)
	suite.assertValues(indicator.NewTransform(closePrice, indicator.Negate), -1, -4, -9)
	suite.assertValues(indicator.NewTransform(closePrice, indicator.PlusConst(three)), 4, 7, 12)
	suite.assertValues(indicator.NewTransform(closePrice, indicator.MinusConst(three)), -2, 1, 6)
	suite.assertValues(indicator.NewTransform(closePrice, indicator.MultiplyConst(three)), 3, 12, 27)
	suite.assertValues(indicator.NewTransform(closePrice, indicator.DivideConst(three)), 1.0/3.0, 4.0/3.0, 3)
	suite.assertValues(indicator.NewTransform(closePrice, indicator.MinConst(three)), 1, 3, 3)
	suite.assertValues(indicator.NewTransform(closePrice, indicator.MaxConst(three)), 3, 4, 9)
	suite.assertValues(indicator.NewTransform(closePrice, indicator.Log), 0)

	negative := indicator.NewTransform(indicator.NewTransform(closePrice, indicator.Negate), indicator.Sqrt)
	_, err := negative.GetValue(0)
	suite.True(errors.HasCode(err, errors.ErrCodeDomainError))

	abs := indicator.NewTransform(indicator.NewTransform(closePrice, indicator.Negate), indicator.Abs)
	suite.assertValues(abs, 1, 4, 9)
}

func (suite *IndicatorTestSuite) TestUnstableBarsAreMonotone() {
	s := mocks.SeriesOf(suite.f, 1, 2, 3)
	closePrice := indicator.NewClosePrice(s)

	previous := map[string]int{}
	for n := 1; n <= 6; n++ {
		upstream, err := indicator.NewSMA(closePrice, n)
		suite.Require().NoError(err)

		change, err := indicator.NewChange(upstream, 2)
		suite.Require().NoError(err)
		shifted, err := indicator.NewPrevious(upstream, 1)
		suite.Require().NoError(err)
		ema, err := indicator.NewEMA(upstream, 3)
		suite.Require().NoError(err)
		combined, err := indicator.NewCombine(upstream, closePrice, indicator.Plus)
		suite.Require().NoError(err)

		for name, ind := range map[string]indicator.Indicator{
			"change":    change,
			"previous":  shifted,
			"ema":       ema,
			"combine":   combined,
			"transform": indicator.NewTransform(upstream, indicator.Abs),
		} {
			suite.GreaterOrEqual(ind.UnstableBars(), upstream.UnstableBars(), name)
			suite.GreaterOrEqual(ind.UnstableBars(), previous[name], name)
			previous[name] = ind.UnstableBars()
		}
	}
}
