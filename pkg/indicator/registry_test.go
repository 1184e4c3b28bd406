package indicator_test

import (
	"testing"

	"github.com/rxtech-lab/argo-ta/mocks"
	"github.com/rxtech-lab/argo-ta/pkg/errors"
	"github.com/rxtech-lab/argo-ta/pkg/indicator"
	"github.com/rxtech-lab/argo-ta/pkg/num"
	"github.com/rxtech-lab/argo-ta/pkg/series"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
	registry indicator.Registry
	s        *series.BarSeries
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) SetupTest() {
	suite.registry = indicator.NewDefaultRegistry()
	suite.s = mocks.SeriesOf(num.DoubleNumFactory(), 1, 2, 3, 4, 5)
}

func (suite *RegistryTestSuite) TestCreateDefaultsToClosePrice() {
	sma, err := suite.registry.Create(indicator.IndicatorTypeSMA, suite.s, indicator.Params{Period: 3})
	suite.Require().NoError(err)
	suite.IsType(&indicator.SMA{}, sma)

	v, err := sma.GetValue(4)
	suite.Require().NoError(err)
	suite.Equal(4.0, v.Float64())
}

func (suite *RegistryTestSuite) TestCreateWithSource() {
	volume := indicator.NewVolume(suite.s)

	sum, err := suite.registry.Create(indicator.IndicatorTypeSum, suite.s, indicator.Params{Source: volume, Period: 2})
	suite.Require().NoError(err)

	v, err := sum.GetValue(4)
	suite.Require().NoError(err)
	suite.Equal(2.0, v.Float64())

	other := mocks.SeriesOf(num.DoubleNumFactory(), 1)
	_, err = suite.registry.Create(indicator.IndicatorTypeSum, other, indicator.Params{Source: volume, Period: 2})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidOperand))
}

func (suite *RegistryTestSuite) TestCreateEveryBuiltin() {
	params := indicator.Params{Period: 2, Period2: 3, Period3: 2, Multiplier: 0}

	for _, name := range suite.registry.List() {
		suite.Run(string(name), func() {
			ind, err := suite.registry.Create(name, suite.s, params)
			suite.Require().NoError(err)
			suite.Require().NotNil(ind)
			suite.Same(suite.s, ind.BarSeries())

			_, err = ind.GetValue(suite.s.EndIndex())
			suite.NoError(err)
		})
	}
}

func (suite *RegistryTestSuite) TestCreatePropagatesConstructorErrors() {
	_, err := suite.registry.Create(indicator.IndicatorTypeEMA, suite.s, indicator.Params{Period: 0})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	_, err = suite.registry.Create(indicator.IndicatorTypeMACDSignal, suite.s, indicator.Params{Period: 2, Period2: 3})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}

func (suite *RegistryTestSuite) TestBollingerDefaultMultiplier() {
	upper, err := suite.registry.Create(indicator.IndicatorTypeBollingerUpper, suite.s, indicator.Params{Period: 3})
	suite.Require().NoError(err)

	bb, err := indicator.NewBollingerBands(indicator.NewClosePrice(suite.s), 3, suite.s.NumFactory().Two())
	suite.Require().NoError(err)

	got, err := upper.GetValue(4)
	suite.Require().NoError(err)
	want, err := bb.Upper.GetValue(4)
	suite.Require().NoError(err)
	suite.InDelta(want.Float64(), got.Float64(), 1e-12)
}

func (suite *RegistryTestSuite) TestRegisterAndRemove() {
	registry := indicator.NewRegistry()
	suite.Empty(registry.List())

	constructor := func(s *series.BarSeries, _ indicator.Params) (indicator.Indicator, error) {
		return indicator.NewConstant(s, s.NumFactory().One())
	}

	suite.Require().NoError(registry.Register("one", constructor))

	err := registry.Register("one", constructor)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))

	ind, err := registry.Create("one", suite.s, indicator.Params{})
	suite.Require().NoError(err)

	v, err := ind.GetValue(0)
	suite.Require().NoError(err)
	suite.Equal(1.0, v.Float64())

	suite.Equal([]indicator.IndicatorType{"one"}, registry.List())
	suite.Require().NoError(registry.Remove("one"))

	err = registry.Remove("one")
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))

	_, err = registry.Create("one", suite.s, indicator.Params{})
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestListIsSorted() {
	names := suite.registry.List()
	suite.Len(names, 28)

	for i := 1; i < len(names); i++ {
		suite.Less(string(names[i-1]), string(names[i]))
	}
}
