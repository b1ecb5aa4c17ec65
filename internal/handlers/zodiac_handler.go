package handlers

import (
	"net/http"

	"github.com/astroverse/fortune-backend/internal/zodiac"
	"github.com/labstack/echo/v4"
)

// ListZodiacSigns returns the full static sign catalogue. Public reference
// data, no authentication required.
func ListZodiacSigns(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "signs": zodiac.AllSigns()})
}
