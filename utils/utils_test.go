package utils

import (
	"math"
	"testing"
)

func dbTest(t *testing.T, raw uint8, expected float64) {
	f := S8HalfDBToFloat(raw)
	if math.Abs(f-expected) > 0.001 {
		t.Fatalf("S8 0.5dB of '0x%x'/0b%b != %f (got %f)\n",
			raw, raw, expected, f)
	}
}

func Test_S8HalfDBToFloat(t *testing.T) {
	dbTest(t, 0x00, 0.0)
	dbTest(t, 0x30, 24.0)
	dbTest(t, 0x01, 0.5)
	dbTest(t, 0xff, -0.5)
	dbTest(t, 0x81, -63.5)
	dbTest(t, 0x80, -64.0)
}

func Test_FloatToS8HalfDB(t *testing.T) {
	cases := []struct {
		db  float64
		raw uint8
	}{
		{0, 0x00},
		{24, 0x30},
		{30, 0x30},
		{-0.5, 0xff},
		{-63.5, 0x81},
		{-100, 0x81},
		{3.2, 0x06},
	}
	for _, c := range cases {
		if got := FloatToS8HalfDB(c.db, -63.5, 24); got != c.raw {
			t.Errorf("%f dB -> 0x%02x, expected 0x%02x", c.db, got, c.raw)
		}
	}
}

func Test_DBLinear(t *testing.T) {
	epsilon := 0.0001
	if math.Abs(DBToLinear(0)-1.0) > epsilon {
		t.Fatalf("0 dB != 1.0")
	}
	if math.Abs(DBToLinear(-6.0206)-0.5) > epsilon {
		t.Fatalf("-6.02 dB != 0.5 (got %f)", DBToLinear(-6.0206))
	}
	if math.Abs(LinearToDB(DBToLinear(12.5))-12.5) > epsilon {
		t.Fatalf("dB -> linear -> dB did not yield the same result")
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatalf("silence should be -inf dB")
	}
}

func Test_ParseByte(t *testing.T) {
	for s, v := range map[string]uint8{"0x7f": 0x7f, "12": 12, "0b101": 5, " 0X10 ": 0x10} {
		got, err := ParseByte(s)
		if err != nil || got != v {
			t.Errorf("ParseByte(%q) = %d, %v", s, got, err)
		}
	}
	for _, s := range []string{"256", "-1", "x", ""} {
		if _, err := ParseByte(s); err == nil {
			t.Errorf("ParseByte(%q) should fail", s)
		}
	}
}
