/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package constants defines the NNF/NEAT wire-level constants shared by the
// codec, the engine and the admin surfaces: transaction codes, error codes,
// reason codes and the small character enumerations used inside records.
package constants

// --- Transaction Codes ---
//
// Grouped by protocol chapter. Values follow the NNF transaction-code
// families (2xxx order entry, 5xxx trades, 6xxx/7xxx broadcasts and
// downloads, 1xxx reference data).
const (
	// Session
	SignonRequestIn   = 2300 // SIGNON_REQUEST_IN
	SignonRequestOut  = 2301 // SIGNON_REQUEST_OUT
	SignoffRequestIn  = 2320 // SIGN_OFF_REQUEST_IN
	SignoffRequestOut = 2321 // SIGN_OFF_REQUEST_OUT

	// Reference data
	SystemInfoRequest        = 1600 // SYSTEM_INFO_REQUEST
	SystemInfoData           = 1601 // SYSTEM_INFO_DATA
	UpdateLocalDatabase      = 7300 // UPDATE_LOCAL_DATABASE
	UpdateLocalDatabaseData  = 7304 // UPDATE_LOCAL_DATABASE_DATA
	UpdateLocalDatabaseHdr   = 7307 // UPDATE_LOCAL_DATABASE_HEADER
	PartialSystemInformation = 7321 // PARTIAL_SYSTEM_INFORMATION
	ExchangePortfolioReq     = 1770 // EXCHANGE_PORTFOLIO_REQUEST
	ExchangePortfolioResp    = 1771 // EXCHANGE_PORTFOLIO_RESPONSE
	MessageDownload          = 7000 // MESSAGE_DOWNLOAD
	MessageDownloadHeader    = 7011 // MESSAGE_DOWNLOAD_HEADER
	MessageDownloadData      = 7021 // MESSAGE_DOWNLOAD_DATA
	MessageDownloadTrailer   = 7031 // MESSAGE_DOWNLOAD_TRAILER

	// Regular order book
	OrderEntryRequest        = 2000 // ORDER_ENTRY_REQUEST (BOARD_LOT_IN)
	PriceConfirmation        = 2012 // PRICE_CONFIRMATION
	PriceModificationRequest = 2040 // PRICE_MODIFICATION_REQUEST (ORDER_MOD_IN)
	OrderModRejOut           = 2042 // ORDER_MOD_REJ_OUT
	KillSwitchIn             = 2062 // KILL_SWITCH_IN
	OrderCancelIn            = 2070 // ORDER_CANCEL_IN
	OrderCxlRejOut           = 2072 // ORDER_CXL_REJ_OUT
	OrderConfirmationOut     = 2073 // ORDER_CONFIRMATION_OUT
	OrderModConfirmOut       = 2074 // ORDER_MOD_CONFIRM_OUT
	OrderCancelConfirmOut    = 2075 // ORDER_CANCEL_CONFIRM_OUT
	FreezeToControl          = 2170 // FREEZE_TO_CONTROL
	OrderErrorOut            = 2231 // ORDER_ERROR_OUT

	// Touchline (TR) variants, reserved for a later protocol revision. The
	// framer stops (without error) when it sees one of these at the head of
	// the buffer.
	OrderEntryRequestTR  = 20000 // ORDER_ENTRY_REQUEST_TR
	OrderModifyRequestTR = 20040 // ORDER_MODIFY_REQUEST_TR

	// Spread and multi-leg books
	SpBoardLotIn           = 2100 // SP_BOARD_LOT_IN
	SpOrderConfirmation    = 2103 // SP_ORDER_CONFIRMATION
	TwoLBoardLotIn         = 2110 // TWOL_BOARD_LOT_IN
	TwoLOrderConfirmation  = 2113 // TWOL_ORDER_CONFIRMATION
	TwoLOrderCxlConfirm    = 2115 // TWOL_ORDER_CXL_CONFIRMATION
	TwoLOrderError         = 2119 // TWOL_ORDER_ERROR
	SpOrderCancelIn        = 2120 // SP_ORDER_CANCEL_IN
	SpOrderCxlConfirmation = 2121 // SP_ORDER_CXL_CONFIRMATION
	SpOrderCxlRejOut       = 2122 // SP_ORDER_CXL_REJ_OUT
	ThrLBoardLotIn         = 2130 // THRL_BOARD_LOT_IN
	SpOrderError           = 2131 // SP_ORDER_ERROR
	ThrLOrderConfirmation  = 2133 // THRL_ORDER_CONFIRMATION
	ThrLOrderCxlConfirm    = 2135 // THRL_ORDER_CXL_CONFIRMATION
	ThrLOrderError         = 2139 // THRL_ORDER_ERROR
	SpOrderModIn           = 2140 // SP_ORDER_MOD_IN
	SpOrderModConOut       = 2141 // SP_ORDER_MOD_CON_OUT
	SpOrderModRejOut       = 2142 // SP_ORDER_MOD_REJ_OUT

	// Trades
	TradeConfirmation  = 2222 // TRADE_CONFIRMATION
	TradeError         = 2223 // TRADE_ERROR
	TradeCancelIn      = 5440 // TRADE_CANCEL_IN
	TradeCancelOut     = 5441 // TRADE_CANCEL_OUT
	TradeCancelConfirm = 5442 // TRADE_CANCEL_CONFIRM
	TradeCancelReject  = 5443 // TRADE_CANCEL_REJECT
	TradeModIn         = 5445 // TRADE_MOD_IN
	TradeModifyConfirm = 5446 // TRADE_MODIFY_CONFIRM
	TradeModifyReject  = 5447 // TRADE_MODIFY_REJECT

	// Unsolicited notifications
	OnStopNotification      = 2212 // ON_STOP_NOTIFICATION
	MITNotification         = 2213 // MIT order taken up
	CtrlMsgToTrader         = 5295 // CTRL_MSG_TO_TRADER
	UserOrderLimitUpdateOut = 5731 // USER_ORDER_LIMIT_UPDATE_OUT
	DealerLimitUpdateOut    = 5733 // DEALER_LIMIT_UPDATE_OUT
	SpdOrdLimitUpdateOut    = 5735 // SPD_ORD_LIMIT_UPDATE_OUT
	BatchOrderCancel        = 9002 // BATCH_ORDER_CANCEL
	BatchSpreadCxlOut       = 9004 // BATCH_SPREAD_CXL_OUT

	// Broadcasts
	BcastJrnlVctMsg             = 6501 // BCAST_JRNL_VCT_MSG
	SpdBcJrnlVctMsg             = 6571 // SPD_BC_JRNL_VCT_MSG
	BcastPartMstrChg            = 7306 // BCAST_PART_MSTR_CHG
	BcastSpdMstrChg             = 7309 // BCAST_SPD_MSTR_CHG
	BcastSpdMstrChgPeriodic     = 7310 // BCAST_SPD_MSTR_CHG_PERIODIC
	RprtMarketStatsHdr          = 1831 // bhavcopy header packet
	RprtMarketStatsTrailer      = 1832 // bhavcopy trailer packet
	RprtMarketStatsOutRpt       = 1833 // RPRT_MARKET_STATS_OUT_RPT
	EnhncdRprtMarketStatsOutRpt = 1834 // ENHNCD_RPRT_MARKET_STATS_OUT_RPT
	SpdStatsOutRpt              = 1835 // spread bhavcopy data packet
	MktIdxRptData               = 1836 // MKT_IDX_RPT_DATA
	IndIdxRptDataCode           = 1837 // IND_IDX_RPT_DATA_CODE
	SectIdxRptDataCode          = 1838 // SECT_IDX_RPT_DATA_CODE
)

// --- Error Codes ---
//
// Flat i16 codes carried in the message header. Names track the NNF manual
// spelling (e$..., E_... families) translated to Go identifiers.
const (
	Success = 0

	// Session / lookup
	UserNotFound          = 16001 // USER_NOT_FOUND
	ErrInvalidTraderID    = 16104 // ERR_INVALID_TRADER_ID
	ErrInvalidOrderNumber = 16273 // ERR_INVALID_ORDER_NUMBER
	ErrInvalidFillNumber  = 16541 // E_invalid_fill_number

	// Authorization
	OeIsNotActive        = 16000 // OE_IS_NOT_ACTIVE
	OeOrdCannotCancel    = 16347 // OE_ORD_CANNOT_CANCEL
	OeOrdCannotModify    = 16348 // OE_ORD_CANNOT_MODIFY
	CloseoutNotAllowed   = 16709 // CLOSEOUT_NOT_ALLOWED
	CloseoutOrderReject  = 16710 // CLOSEOUT_ORDER_REJECT
	CloseoutTrdmodReject = 16711 // CLOSEOUT_TRDMOD_REJECT

	// Ownership
	ErrNotYourOrder = 16291 // e$not_your_order
	ErrNotYourFill  = 16545 // E_not_your_fill

	// Validation
	InvalidOrder           = 16292 // INVALID_ORDER
	OeQuantityNotMultRL    = 16328 // OE_QUANTITY_NOT_MULT_RL
	OeDiffTrdModVol        = 16329 // OE_DIFF_TRD_MOD_VOL
	ErrQtyShouldBeSame     = 16544 // e$qty_should_be_same
	ErrInvalidContractComb = 16627 // e$invalid_contract_comb
	ErrInvalidProClient    = 16628 // e$invalid_pro_client
	ErrInvalidCliAc        = 16629 // e$invalid_cli_ac
	ErrGtcGtdNotAllowed    = 16630 // e$gtcgtd_not_allowed
	ErrDataNotChanged      = 16631 // ERR_DATA_NOT_CHANGED
	ErrPriceDiffOutOfRange = 16632 // e$price_diff_out_of_range

	// Freeze outcomes
	OePriceFreezeCan = 16415 // OE_PRICE_FREEZE_CAN
	OeQtyFreezeCan   = 16416 // OE_QTY_FREEZE_CAN

	// Duplicate trade-protocol requests
	ErrDupRequest       = 16542 // e_dup_request
	ErrDupTrdCxlRequest = 16543 // e_dup_trd_cxl_request
)

// --- Reason Codes ---
const (
	NormalConfirmation = 0
	PriceFreeze        = 3
	QuantityFreeze     = 4
)

// --- Broker Types (CM > BM > DL hierarchy) ---
const (
	CorporateManager byte = 'C'
	BranchManager    byte = 'B'
	Dealer           byte = 'D'
)

// --- Participant / account discipline ---
const (
	ParticipantTypeBroker      byte = 'B'
	ParticipantTypeParticipant byte = 'P'

	ProClientCli = 1 // client account order
	ProClientPro = 2 // broker own-account order
)

// --- Buy/Sell indicator ---
const (
	BuyIndicator  = 1
	SellIndicator = 2
)

// --- Book types ---
const (
	BookTypeRegular = 1
	BookTypeSpecial = 2
	BookTypeOddlot  = 5
	BookTypeSpot    = 6
	BookTypeAuction = 7
	BookTypeSpread  = 11
)

// --- Market types (trade records) ---
const (
	MktTypeNormal  byte = '1'
	MktTypeOddlot  byte = '2'
	MktTypeSpot    byte = '3'
	MktTypeAuction byte = '4'
)

// --- Trade modification RequestedBy ---
const (
	RequestedByBuyer  byte = '1'
	RequestedBySeller byte = '2'
	RequestedByBoth   byte = '3'
)

// --- Open/Close indicators ---
const (
	PositionOpen  byte = 'O'
	PositionClose byte = 'C'
)

// --- Misc record values ---
const (
	CloseoutFlagSet     byte = 'C'
	DeleteFlagNo        byte = 'N'
	DeleteFlagYes       byte = 'Y'
	MoreRecordsNo       byte = 'N'
	CombinationEligible byte = 1

	// Kill-switch sentinel: cancel every order of the target trader.
	KillSwitchAllTokens = -1

	// Spread price-difference bound, absolute.
	MaxPriceDiff = 99_999_999

	// Seconds added to sign-on time to produce the session EndTime.
	SessionLengthSeconds = 28800

	// Legs of a 2L/3L order must share the high-order token component.
	TokenStreamDivisor = 100_000_000
)
