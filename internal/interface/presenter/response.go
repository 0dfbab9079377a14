package presenter

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Page は一覧レスポンスです
// 単一レコードはエンベロープで包まずRecordで返す
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

type PageMeta struct {
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"perPage"`
	TotalItems int  `json:"totalItems"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination は総件数からページ数を計算します
// 0件でもTotalPagesは1
func NewPagination(page, perPage, totalItems int) Pagination {
	totalPages := 1
	if perPage > 0 && totalItems > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func List[T any](c echo.Context, items []T, p Pagination) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, Page[T]{Data: items, Meta: PageMeta{Pagination: p}})
}

func Record(c echo.Context, record any) error {
	return c.JSON(http.StatusOK, record)
}

func RecordCreated(c echo.Context, record any) error {
	return c.JSON(http.StatusCreated, record)
}

func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}
