// Package units converts values between units of length, weight,
// temperature, area, volume, speed, time, digital storage and currency.
//
// Linear categories convert through a base unit using fixed factors.
// Temperature converts through Celsius. Currency divides by the source rate
// and multiplies by the target rate, with rates supplied by a RateProvider;
// without one, currency conversion fails with errs.ErrRatesUnavailable
// rather than returning the input unchanged.
package units
